package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/CamuDigital/PH-Backend/internal/auth"
	"github.com/CamuDigital/PH-Backend/internal/changerequest"
	"github.com/CamuDigital/PH-Backend/internal/config"
	"github.com/CamuDigital/PH-Backend/internal/db"
	"github.com/CamuDigital/PH-Backend/internal/external"
	"github.com/CamuDigital/PH-Backend/internal/importer"
	"github.com/CamuDigital/PH-Backend/internal/insuree"
	"github.com/CamuDigital/PH-Backend/internal/location"
	"github.com/CamuDigital/PH-Backend/internal/middleware"
	"github.com/CamuDigital/PH-Backend/internal/policyholder"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid config")
	}

	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	location.Init()
	insuree.Init()
	policyholder.Init()
	changerequest.Init()
	importer.Init(cfg)

	if cfg.Services.ERPURL != "" {
		policyholder.Erp = external.NewHTTPErpClient(cfg.Services.ERPURL, cfg.Services.ERPKey)
	}
	if cfg.Services.DMSURL != "" {
		policyholder.Folders = external.NewHTTPFolderSink(cfg.Services.DMSURL, cfg.Services.DMSKey)
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/villages", location.SetupRoutes())
	r.Mount("/policyholders", policyholder.SetupRoutes())
	r.Mount("/changerequests", changerequest.SetupRoutes())
	r.Mount("/import", importer.SetupRoutes())

	logrus.Infof("Server listening on port :%s...", port)

	http.ListenAndServe("0.0.0.0:"+port, r)
}
