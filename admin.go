// admin.go - Privacy-conscious admin dashboard and visitor tracking
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Privacy-conscious visitor tracking struct
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalReviews     int             `json:"total_reviews"`
	AverageRating    float64         `json:"average_rating"`
	RecentReviews    []Review        `json:"recent_reviews"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

var adminToken string
var hashingSalt string

// Initialize admin system with privacy considerations
func initAdminToken() {
	adminToken = generateAdminToken()
	hashingSalt = generateAdminToken() // Use for IP hashing

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", adminToken)
	}

	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP)
func hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16] // Truncate for storage efficiency
}

// Middleware to check admin authentication
func adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Privacy-conscious visitor tracking middleware
func visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip tracking for static files and admin pages
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		// Track visitor with hashed IP in background
		go trackVisitorPrivacy(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

// Track visitor with privacy protections
func trackVisitorPrivacy(ip, userAgent, path string) {
	if db == nil {
		return
	}
	hashedIP := hashIP(ip)

	_, err := db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, time.Now())

	if err != nil {
		log.Printf("Error recording visitor: %v", err)
	}
}

// Initialize privacy-conscious visitor tracking
func initVisitorTracking() {
	createVisitorTable := `
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

	_, err := db.Exec(createVisitorTable)
	if err != nil {
		log.Fatal("Failed to create visitors table:", err)
	}

	// Clean up old visitor data for privacy compliance (run in background)
	go cleanupOldVisitorData()

	log.Println("Privacy-conscious visitor tracking initialized")
}

// Cleanup old visitor data for privacy compliance
func cleanupOldVisitorData() {
	result, err := db.Exec(`
		DELETE FROM visitors
		WHERE timestamp < datetime('now', '-12 months')
	`)
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}

	rowsDeleted, _ := result.RowsAffected()
	if rowsDeleted > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", rowsDeleted)
	}
}

// Get comprehensive admin statistics: site traffic plus the review store
func getAdminStats(store *ReviewStore) (*AdminStats, error) {
	stats := &AdminStats{}

	// Total visitors
	err := db.QueryRow("SELECT COUNT(*) FROM visitors").Scan(&stats.TotalVisitors)
	if err != nil {
		return nil, err
	}

	// Unique visitors (by hashed IP)
	err = db.QueryRow("SELECT COUNT(DISTINCT hashed_ip) FROM visitors").Scan(&stats.UniqueVisitors)
	if err != nil {
		return nil, err
	}

	// Visitors today
	err = db.QueryRow(`
		SELECT COUNT(*) FROM visitors
		WHERE DATE(timestamp) = DATE('now')
	`).Scan(&stats.VisitorsToday)
	if err != nil {
		return nil, err
	}

	// Visitors this week
	err = db.QueryRow(`
		SELECT COUNT(*) FROM visitors
		WHERE timestamp >= datetime('now', '-7 days')
	`).Scan(&stats.VisitorsThisWeek)
	if err != nil {
		return nil, err
	}

	// Review store totals (read-only: the collection has no admin-side edits)
	reviews := store.LoadAll()
	stats.TotalReviews = len(reviews)
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	if len(reviews) > 0 {
		stats.AverageRating = float64(sum) / float64(len(reviews))
	}
	if len(reviews) > 5 {
		reviews = reviews[:5]
	}
	stats.RecentReviews = reviews

	// Recent visitors (with hashed IPs for privacy)
	rows, err := db.Query(`
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT 50
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var visitor VisitorMetric
		err := rows.Scan(&visitor.ID, &visitor.HashedIP, &visitor.UserAgent, &visitor.Path, &visitor.Timestamp)
		if err != nil {
			continue
		}
		stats.RecentVisitors = append(stats.RecentVisitors, visitor)
	}

	return stats, nil
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, store *ReviewStore) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		adminUsername := os.Getenv("ADMIN_USERNAME")
		adminPassword := os.Getenv("ADMIN_PASSWORD")

		// Default credentials for development (remove in production)
		if adminUsername == "" {
			adminUsername = "admin"
			if gin.Mode() == gin.DebugMode {
				log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
			}
		}
		if adminPassword == "" {
			adminPassword = "admin123"
			if gin.Mode() == gin.DebugMode {
				log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
			}
		}

		if username == adminUsername && password == adminPassword {
			// Set secure cookie (24 hours)
			c.SetCookie("admin_token", adminToken, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
		} else {
			log.Printf("Failed admin login attempt from %s", hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
		}
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(adminAuthMiddleware())

	// Admin dashboard
	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := getAdminStats(store)
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	// Admin API endpoints for HTMX/AJAX
	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := getAdminStats(store)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// View visitors
	adminGroup.GET("/visitors", func(c *gin.Context) {
		rows, err := db.Query(`
			SELECT id, hashed_ip, user_agent, path, timestamp
			FROM visitors
			ORDER BY timestamp DESC
			LIMIT 200
		`)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		defer rows.Close()

		var visitors []VisitorMetric
		for rows.Next() {
			var visitor VisitorMetric
			err := rows.Scan(&visitor.ID, &visitor.HashedIP, &visitor.UserAgent, &visitor.Path, &visitor.Timestamp)
			if err != nil {
				continue
			}
			visitors = append(visitors, visitor)
		}

		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	// Privacy compliance endpoint - purge visitor data past retention
	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		go cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	// Admin statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := getAdminStats(store)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Set headers for file download
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")

		log.Printf("Admin stats exported by %s", hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
