package main

import (
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
)

func main() {
	initDB()
	initAdminToken()
	initVisitorTracking()

	store := NewReviewStore(newSQLiteStorage(db))

	r := newRouter(store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

func newRouter(store *ReviewStore) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")
	r.Use(visitorTrackingMiddleware())

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		reviews := store.LoadAll()
		cards := make([]ReviewCard, 0, len(reviews))
		for _, rv := range reviews {
			cards = append(cards, store.RenderCard(rv, false))
		}
		c.HTML(http.StatusOK, "index.html", gin.H{
			"aboutMeContent": AboutMe,
			"projects":       Projects,
			"reviewCards":    cards,
		})
	})

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	// Work experience content
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{
			"jobs": Jobs,
		})
	})

	// Education content
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{
			"schools": Schools,
		})
	})

	// Portfolio grid fragment, filtered by category button
	r.GET("/portfolio-content", func(c *gin.Context) {
		filter := c.DefaultQuery("filter", "all")
		c.HTML(http.StatusOK, "portfolio-grid.html", gin.H{
			"projects": filterProjects(filter),
			"filter":   filter,
		})
	})

	// CV download stub
	r.GET("/cv", func(c *gin.Context) {
		c.FileAttachment("./static/cv.pdf", "Zach-Kordas-Potter-CV.pdf")
	})

	// Handle contact form submission with HTMX
	r.POST("/contact", handleContactForm)

	setupReviewRoutes(r, store)
	setupAdminRoutes(r, store)

	return r
}
