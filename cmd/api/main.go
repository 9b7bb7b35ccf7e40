package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "microfinance-backoffice/internal/adapter/http"
	appmw "microfinance-backoffice/internal/adapter/middleware"
	"microfinance-backoffice/internal/adapter/repository/mysql"
	"microfinance-backoffice/internal/config"
	"microfinance-backoffice/internal/domain/notification"
	"microfinance-backoffice/internal/infrastructure/cache"
	"microfinance-backoffice/internal/infrastructure/db"
	"microfinance-backoffice/internal/infrastructure/queue"
	"microfinance-backoffice/internal/usecase/dashboard"
	"microfinance-backoffice/internal/usecase/investment"
	"microfinance-backoffice/internal/usecase/investor"
	"microfinance-backoffice/internal/usecase/loan"
	"microfinance-backoffice/internal/usecase/withdrawal"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// Event delivery is best-effort; a dead broker must not block the API.
	var pub notification.Publisher
	if producer, err := queue.NewProducer(cfg.AMQPURL, cfg.AMQPExchange); err != nil {
		log.Printf("amqp: %v (events disabled)", err)
	} else {
		pub = producer
		defer producer.Close()
	}

	investors := mysql.NewInvestorRepository(gdb)
	investments := mysql.NewInvestmentRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	repayments := mysql.NewRepaymentRepository(gdb)
	withdrawals := mysql.NewWithdrawalRepository(gdb)
	notifications := mysql.NewNotificationRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	investorUC := investor.NewUsecase(investors, tx, pub)
	investmentUC := investment.NewUsecase(investments, investors, tx, pub)
	loanUC := loan.NewUsecase(loans, repayments, investors, tx, pub)
	withdrawalUC := withdrawal.NewUsecase(withdrawals, investors, tx, pub)
	dashboardUC := dashboard.NewUsecase(investors, investments, loans)

	base := httpadp.NewHandler()
	investorH := httpadp.NewInvestorHandler(investorUC)
	investmentH := httpadp.NewInvestmentHandler(investmentUC)
	loanH := httpadp.NewLoanHandler(loanUC)
	withdrawalH := httpadp.NewWithdrawalHandler(withdrawalUC)
	dashboardH := httpadp.NewDashboardHandler(dashboardUC)
	notificationH := httpadp.NewNotificationHandler(notifications, investors)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// Money-moving submissions carry idempotency headers.
	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", base.Health)

	// onboarding
	e.POST("/investors", investorH.Register)
	e.POST("/investors/confirm", investorH.ConfirmEmail)
	e.POST("/investors/resend-confirmation", investorH.ResendConfirmation)
	e.POST("/investors/password-reset/request", investorH.RequestPasswordReset)
	e.POST("/investors/password-reset", investorH.ResetPassword)

	// investments
	e.POST("/investments", investmentH.Create, idemp)
	e.GET("/investments/:investment_id", investmentH.Get)
	e.GET("/investors/:investor_id/investments", investmentH.ListByInvestor)

	// withdrawals
	e.POST("/withdrawals", withdrawalH.Request, idemp)
	e.PUT("/withdrawals/:withdrawal_id/confirm", withdrawalH.Confirm)
	e.GET("/investors/:investor_id/withdrawals", withdrawalH.ListByInvestor)

	// loans and repayments
	e.POST("/loans", loanH.Submit, idemp)
	e.GET("/loans/:loan_id", loanH.Get)
	e.GET("/investors/:investor_id/loans", loanH.ListByInvestor)
	e.POST("/loans/:loan_id/repayments", loanH.SubmitRepayment, idemp)
	e.GET("/investors/:investor_id/repayments", loanH.ListRepaymentsByInvestor)

	// notifications
	e.GET("/investors/:investor_id/notifications", notificationH.List)
	e.PUT("/investors/:investor_id/notifications/:notification_id/read", notificationH.MarkRead)
	e.PUT("/investors/:investor_id/notifications/read-all", notificationH.MarkAllRead)

	// back-office (role comes from the X-Actor-Role header set by the gateway)
	admin := e.Group("/admin")
	admin.GET("/dashboard", dashboardH.Summary)
	admin.GET("/investors/pending", investorH.ListPending)
	admin.PUT("/investors/:investor_id/approve", investorH.Approve)
	admin.PUT("/investors/:investor_id/reject", investorH.Reject)
	admin.GET("/investments/pending", investmentH.ListPending)
	admin.PUT("/investments/:investment_id/approve", investmentH.Approve)
	admin.PUT("/investments/:investment_id/reject", investmentH.Reject)
	admin.PUT("/investments/:investment_id/reapprove", investmentH.Reapprove)
	admin.GET("/withdrawals/pending", withdrawalH.ListPending)
	admin.PUT("/withdrawals/:withdrawal_id/pay", withdrawalH.Pay)
	admin.PUT("/withdrawals/:withdrawal_id/reject", withdrawalH.Reject)
	admin.GET("/loans/pending", loanH.ListPending)
	admin.PUT("/loans/:loan_id/approve", loanH.Approve)
	admin.PUT("/loans/:loan_id/reject", loanH.Reject)
	admin.GET("/repayments/pending", loanH.ListPendingRepayments)
	admin.PUT("/repayments/approve", loanH.ApproveRepayments)
	admin.PUT("/repayments/:repayment_id/reject", loanH.RejectRepayment)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
