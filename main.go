// @title           IFEX API
// @version         1.0
// @description     IFEX business administration backend - customers, quotations, invoices and PDF documents.

// @contact.name   API Support
// @contact.url    https://www.ifexprint.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"ifex/handlers"
	"ifex/models"
	"ifex/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"gorm.io/gorm"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"https://admin.ifexprint.com",
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

var cronRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	cronLogger *log.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
		}
	}()
}

// recomputeQuotationTotals refreshes the cached quotation money columns from
// their items. Handlers keep the cache consistent transactionally; this is a
// staleness guard against out-of-band edits.
func recomputeQuotationTotals(db *gorm.DB) error {
	var quotations []models.Quotation
	if err := db.Preload("Items").Find(&quotations).Error; err != nil {
		return err
	}
	for _, q := range quotations {
		var subtotal float64
		for _, it := range q.Items {
			subtotal += it.LineTotal()
		}
		grandTotal := subtotal + subtotal*q.Tax/100
		if subtotal == q.TotalPrice && grandTotal == q.GrandTotal {
			continue
		}
		err := db.Model(&models.Quotation{}).Where("id = ?", q.ID).
			Updates(map[string]interface{}{"total_price": subtotal, "grand_total": grandTotal}).Error
		if err != nil {
			return err
		}
		log.Printf("Recomputed totals for quotation %s", q.QuotationNumber)
	}
	return nil
}

// recomputeInvoiceTotals does the same for invoices
func recomputeInvoiceTotals(db *gorm.DB) error {
	var invoices []models.Invoice
	if err := db.Preload("Items").Find(&invoices).Error; err != nil {
		return err
	}
	for _, inv := range invoices {
		var subtotal float64
		for _, it := range inv.Items {
			subtotal += it.LineTotal()
		}
		grandTotal := subtotal + subtotal*inv.Tax/100
		if subtotal == inv.TotalAmount && grandTotal == inv.GrandTotal {
			continue
		}
		err := db.Model(&models.Invoice{}).Where("id = ?", inv.ID).
			Updates(map[string]interface{}{"total_amount": subtotal, "grand_total": grandTotal}).Error
		if err != nil {
			return err
		}
		log.Printf("Recomputed totals for invoice %s", inv.InvoiceNumber)
	}
	return nil
}

// pruneActivityLogs drops audit rows older than 180 days
func pruneActivityLogs(db *gorm.DB) error {
	cutoff := time.Now().AddDate(0, 0, -180)
	res := db.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("Pruned %d activity log rows older than %s", res.RowsAffected, cutoff.Format("2006-01-02"))
	}
	return nil
}

// ginPathToSwaggerPath converts Gin path params :param to Swagger {param}
var ginPathParamRe = regexp.MustCompile(`:([^/]+)`)

func ginPathToSwaggerPath(path string) string {
	return ginPathParamRe.ReplaceAllString(path, "{$1}")
}

// buildSwaggerFromRoutes returns a handler that serves Swagger 2.0 JSON with
// all registered routes.
func buildSwaggerFromRoutes(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		paths := make(map[string]interface{})
		for _, route := range engine.Routes() {
			if strings.HasPrefix(route.Path, "/swagger") {
				continue
			}
			path := ginPathToSwaggerPath(route.Path)
			if paths[path] == nil {
				paths[path] = make(map[string]interface{})
			}
			method := strings.ToLower(route.Method)

			op := map[string]interface{}{
				"summary":     route.Method + " " + route.Path,
				"description": "API endpoint: " + route.Path,
				"tags":        []string{"API"},
				"produces":    []string{"application/json"},
				"responses": map[string]interface{}{
					"200": map[string]interface{}{"description": "Success - returns JSON"},
					"400": map[string]interface{}{
						"description": "Bad Request",
						"schema": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"error": map[string]interface{}{"type": "string"},
							},
						},
					},
					"500": map[string]interface{}{
						"description": "Internal Server Error",
						"schema": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"error": map[string]interface{}{"type": "string"},
							},
						},
					},
				},
			}
			if method == "post" || method == "put" || method == "patch" {
				op["consumes"] = []string{"application/json"}
				op["parameters"] = []map[string]interface{}{
					{
						"in":          "body",
						"name":        "body",
						"required":    true,
						"description": "JSON body. Fields vary by endpoint.",
						"schema":      map[string]interface{}{"type": "object"},
					},
				}
			}
			(paths[path].(map[string]interface{}))[method] = op
		}

		doc := map[string]interface{}{
			"swagger": "2.0",
			"info": map[string]interface{}{
				"title":       "IFEX API",
				"description": "IFEX business administration backend API.",
				"version":     "1.0",
			},
			"host":     c.Request.Host,
			"basePath": "/",
			"schemes":  []string{"http", "https"},
			"paths":    paths,
		}
		c.Header("Content-Type", "application/json")
		c.JSON(http.StatusOK, doc)
	}
}

func main() {
	db := storage.InitGormDB()

	// Daily maintenance at 00:30
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 0 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var wg sync.WaitGroup
		safeGo(ctx, &wg, "RecomputeQuotationTotals", func(ctx context.Context) error {
			return recomputeQuotationTotals(db)
		}, cronLogger)
		safeGo(ctx, &wg, "RecomputeInvoiceTotals", func(ctx context.Context) error {
			return recomputeInvoiceTotals(db)
		}, cronLogger)
		safeGo(ctx, &wg, "PruneActivityLogs", func(ctx context.Context) error {
			return pruneActivityLogs(db)
		}, cronLogger)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			log.Println("All cron jobs finished")
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
			if cronLogger != nil {
				cronLogger.Println("Cron timeout reached, jobs cancelled")
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}
	c.Start()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 1. CUSTOMERS ====================
	r.POST("/api/customer_create", handlers.CreateCustomer(db))
	r.GET("/api/customers", handlers.GetAllCustomers(db))
	r.GET("/api/customer_fetch/:id", handlers.GetCustomer(db))
	r.PUT("/api/customer_update/:id", handlers.UpdateCustomer(db))
	r.DELETE("/api/customer_delete/:id", handlers.DeleteCustomer(db))

	// ==================== 2. QUOTATIONS ====================
	r.POST("/api/quotation_create", handlers.CreateQuotation(db))
	r.GET("/api/quotations", handlers.GetAllQuotations(db))
	r.GET("/api/quotation_fetch/:id", handlers.GetQuotation(db))
	r.PUT("/api/quotation_update/:id", handlers.UpdateQuotation(db))
	r.DELETE("/api/quotation_delete/:id", handlers.DeleteQuotation(db))
	r.GET("/api/quotation_pdf/:id", handlers.GenerateQuotationPDF(db))

	// ==================== 3. INVOICES ====================
	r.POST("/api/invoice_create", handlers.CreateInvoice(db))
	r.GET("/api/invoices", handlers.GetAllInvoices(db))
	r.GET("/api/invoice_fetch/:id", handlers.GetInvoice(db))
	r.PUT("/api/invoice_update/:id", handlers.UpdateInvoice(db))
	r.DELETE("/api/invoice_delete/:id", handlers.DeleteInvoice(db))
	r.GET("/api/invoice_pdf/:id", handlers.GenerateInvoicePDF(db))

	// ==================== 4. EXPORT ====================
	r.GET("/api/export_invoices_xlsx", handlers.ExportInvoicesXLSX(db))
	r.GET("/api/export_customers_csv", handlers.ExportCustomersCSV(db))

	// ==================== 5. ACTIVITY LOGS ====================
	r.GET("/api/activity_logs", handlers.GetActivityLogs(db))

	// ==================== 6. SWAGGER ====================
	r.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			// Prefer a swag-generated doc when one is registered; fall back
			// to the doc built from the live route table.
			if doc, err := swag.ReadDoc(); err == nil && len(doc) > 100 {
				c.Header("Content-Type", "application/json")
				c.String(http.StatusOK, doc)
				return
			}
			buildSwaggerFromRoutes(r)(c)
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"))(c)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
