package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/peoplehub/hr-backend-go/internal/config"
	appHTTP "github.com/peoplehub/hr-backend-go/internal/handler/http"
	"github.com/peoplehub/hr-backend-go/internal/pkg/cron"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
	"github.com/peoplehub/hr-backend-go/internal/pkg/email"
	"github.com/peoplehub/hr-backend-go/internal/pkg/jwt"
	"github.com/peoplehub/hr-backend-go/internal/pkg/sse"
	"github.com/peoplehub/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peoplehub/hr-backend-go/internal/service/attendance"
	categoryService "github.com/peoplehub/hr-backend-go/internal/service/category"
	employeeService "github.com/peoplehub/hr-backend-go/internal/service/employee"
	leaveService "github.com/peoplehub/hr-backend-go/internal/service/leave"
	ledgerService "github.com/peoplehub/hr-backend-go/internal/service/ledger"
	notificationService "github.com/peoplehub/hr-backend-go/internal/service/notification"
	penaltyService "github.com/peoplehub/hr-backend-go/internal/service/penalty"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	categoryRepo := postgresql.NewCategoryRepository(db)
	allotmentRepo := postgresql.NewAllotmentRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	penaltyRepo := postgresql.NewPenaltyRepository(db)
	clockInRepo := postgresql.NewClockInRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailSender, err := email.NewSender(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email sender:", err)
	}
	hub := sse.NewHub()

	notifier := notificationService.NewDispatcher(employeeRepo, emailSender, hub)
	ledger := ledgerService.NewLedgerService(allotmentRepo, leaveRequestRepo)
	registry := categoryService.NewRegistryService(categoryRepo)
	workflow := leaveService.NewWorkflowService(db, categoryRepo, allotmentRepo, leaveRequestRepo, ledger, notifier)
	assessor := penaltyService.NewAssessorService(
		db,
		cfg.Penalty.CategoryName,
		employeeRepo,
		clockInRepo,
		penaltyRepo,
		categoryRepo,
		allotmentRepo,
		leaveRequestRepo,
		settingsRepo,
		ledger,
		notifier,
	)
	assigner := employeeService.NewCodeAssigner(employeeRepo)
	clockIn := attendanceService.NewClockInService(clockInRepo, assessor, assigner)

	scheduler := cron.NewScheduler()
	cron.NewLedgerJobs(ledger).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	categoryHandler := appHTTP.NewCategoryHandler(registry)
	leaveHandler := appHTTP.NewLeaveHandler(workflow)
	attendanceHandler := appHTTP.NewAttendanceHandler(clockIn, assessor, ledger)
	notificationHandler := appHTTP.NewNotificationHandler(hub)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		categoryHandler,
		leaveHandler,
		attendanceHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
