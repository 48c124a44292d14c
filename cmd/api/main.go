package main

import (
	"fmt"
	"net/http"

	"github.com/shiftwise/timeclock-backend-go/internal/config"
	appHTTP "github.com/shiftwise/timeclock-backend-go/internal/handler/http"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/localtime"
	"github.com/shiftwise/timeclock-backend-go/internal/repository/postgresql"
	authService "github.com/shiftwise/timeclock-backend-go/internal/service/auth"
	shiftService "github.com/shiftwise/timeclock-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	normalizer := localtime.NewNormalizer(cfg.Time.OffsetMinutes, cfg.Time.WeekStart)

	authSvc := authService.NewAuthService(employeeRepo, JWTService)
	shiftSvc := shiftService.NewShiftService(shiftRepo, employeeRepo, clock.System(), normalizer)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)

	router := appHTTP.NewRouter(JWTService, authHandler, shiftHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
