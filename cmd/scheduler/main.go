package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/config"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/pkg/push"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/service/breakmonitor"
	notificationService "github.com/cmlabs-hris/payroll-scheduler-go/internal/service/notification"
	payrollService "github.com/cmlabs-hris/payroll-scheduler-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	setupLogger(cfg.App.LogLevel)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	breakTypeRepo := postgresql.NewBreakTypeRepository(db)

	pushHub := push.NewHub()
	notifier := notificationService.NewNotificationService(notificationRepo, pushHub, notificationService.Config{})
	defer notifier.Stop()

	generator := payrollService.NewGenerator(policyRepo, employeeRepo, attendanceRepo, payslipRepo, notifier)
	monitor := breakmonitor.NewMonitor(attendanceRepo, employeeRepo, breakTypeRepo, notifier, cfg.Scheduler.BreakDedupeWindow)

	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(generator, cfg.Scheduler.PayrollInterval).RegisterJobs(scheduler)
	cron.NewBreakJobs(monitor, cfg.Scheduler.BreakPollInterval).RegisterJobs(scheduler)
	scheduler.Start()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	scheduler.Stop()
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
