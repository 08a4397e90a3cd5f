package config

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/furnitune/furnitune-api/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedData is the demo catalog written on first start
type SeedData struct {
	Users []struct {
		Email        string `yaml:"email"`
		Password     string `yaml:"password"`
		Name         string `yaml:"name"`
		Phone        string `yaml:"phone"`
		ProfileImage string `yaml:"profile_image"`
	} `yaml:"users"`
	Products []struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Price       float64  `yaml:"price"`
		Category    string   `yaml:"category"`
		Image       string   `yaml:"image"`
		Stock       int      `yaml:"stock"`
		Colors      []string `yaml:"colors"`
		Sizes       []string `yaml:"sizes"`
	} `yaml:"products"`
	Notifications []struct {
		User  string `yaml:"user"`
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
		Type  string `yaml:"type"`
	} `yaml:"notifications"`
	Reviews []struct {
		User    string `yaml:"user"`
		Product string `yaml:"product"`
		Rating  int    `yaml:"rating"`
		Message string `yaml:"message"`
	} `yaml:"reviews"`
}

// LoadSeedData parses the embedded seed catalog
func LoadSeedData() (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// recomputeAllRatingsSQL rewrites every product's rating aggregate from the reviews table
const recomputeAllRatingsSQL = `UPDATE products SET
	rating_avg = COALESCE((SELECT AVG(rating) FROM reviews WHERE reviews.product_id = products.id), 0),
	reviews_count = (SELECT COUNT(*) FROM reviews WHERE reviews.product_id = products.id)`

// Seed inserts the demo data, but only when the users table is empty.
// A non-empty users table means the database was bootstrapped before.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		log.Println("Data already seeded")
		return nil
	}

	data, err := LoadSeedData()
	if err != nil {
		return err
	}

	log.Println("Seeding initial data...")
	err = db.Transaction(func(tx *gorm.DB) error {
		userIDs := make(map[string]uint, len(data.Users))
		for _, u := range data.Users {
			user := models.User{
				Email:        u.Email,
				Password:     u.Password,
				Name:         u.Name,
				Phone:        nullable(u.Phone),
				ProfileImage: nullable(u.ProfileImage),
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
			userIDs[u.Email] = user.ID
		}

		productIDs := make(map[string]uint, len(data.Products))
		for _, p := range data.Products {
			product := models.Product{
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				Category:    p.Category,
				ImageURL:    p.Image,
				Stock:       p.Stock,
				Colors:      models.JoinList(p.Colors),
				Sizes:       models.JoinList(p.Sizes),
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.Name, err)
			}
			productIDs[p.Name] = product.ID
		}

		for _, n := range data.Notifications {
			userID, ok := userIDs[n.User]
			if !ok {
				return fmt.Errorf("seed notification references unknown user %s", n.User)
			}
			notification := models.Notification{
				UserID: userID,
				Title:  n.Title,
				Body:   n.Body,
				Type:   n.Type,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return fmt.Errorf("failed to seed notification: %w", err)
			}
		}

		for _, r := range data.Reviews {
			userID, ok := userIDs[r.User]
			if !ok {
				return fmt.Errorf("seed review references unknown user %s", r.User)
			}
			productID, ok := productIDs[r.Product]
			if !ok {
				return fmt.Errorf("seed review references unknown product %s", r.Product)
			}
			review := models.Review{
				UserID:    userID,
				ProductID: productID,
				Rating:    r.Rating,
				Message:   nullable(r.Message),
			}
			if err := tx.Create(&review).Error; err != nil {
				return fmt.Errorf("failed to seed review: %w", err)
			}
		}

		return tx.Exec(recomputeAllRatingsSQL).Error
	})
	if err != nil {
		return err
	}

	log.Printf("Data seeded successfully: %d users, %d products, %d notifications, %d reviews",
		len(data.Users), len(data.Products), len(data.Notifications), len(data.Reviews))
	return nil
}

// nullable maps an empty string to NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
