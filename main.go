package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/soapboxd/soapbox/config"
	"github.com/soapboxd/soapbox/models"
	"github.com/soapboxd/soapbox/routes"
	"github.com/soapboxd/soapbox/utils"
)

func main() {
	hashKey := flag.String("hash-admin-key", "", "print the bcrypt hash of the given admin key and exit")
	flag.Parse()
	if *hashKey != "" {
		hash, err := utils.HashAdminKey(*hashKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.Post{},
		&models.PublicPost{},
		&models.ReportReceipt{},
		&models.UserActivity{},
		&models.Feedback{},
		&models.Identity{},
		&models.PageView{},
	)

	r := routes.SetupRouter(db)

	// Background pruning of aged page-view rows (best-effort)
	utils.StartPageViewPruner(time.Hour)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
