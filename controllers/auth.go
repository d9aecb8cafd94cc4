package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"cafeorder-backend/models"
	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`

	CafeName    string       `json:"cafeName" binding:"required"`
	CafeSlug    string       `json:"cafeSlug" binding:"required"`
	CafeAddress string       `json:"cafeAddress"`
	CafePhone   string       `json:"cafePhone"`
	Hours       models.JSONB `json:"businessHours"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Register onboards a cafe: the tenant row, its first admin and default
// settings are created in one transaction.
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	slug := strings.ToLower(strings.TrimSpace(input.CafeSlug))
	if !slugPattern.MatchString(slug) {
		utils.RespondWithError(c, http.StatusBadRequest, "Cafe slug must be lowercase letters, digits and hyphens")
		return
	}

	var existingAdmin models.Admin
	if err := ac.DB.Where("email = ?", input.Email).First(&existingAdmin).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var existingCafe models.Cafe
	if err := ac.DB.Where("slug = ?", slug).First(&existingCafe).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Cafe slug already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	hours := input.Hours
	if hours == nil {
		hours = models.DefaultBusinessHours()
	}

	cafe := models.Cafe{
		ID:            uuid.New(),
		Slug:          slug,
		Name:          input.CafeName,
		Address:       input.CafeAddress,
		Phone:         input.CafePhone,
		BusinessHours: hours,
		ThemeColors:   models.JSONB{},
	}
	admin := models.Admin{
		Email:    input.Email,
		Password: input.Password, // hashed in BeforeCreate hook
		Name:     input.Name,
		Phone:    input.Phone,
		CafeID:   cafe.ID,
		IsActive: true,
	}
	settings := models.Settings{CafeID: cafe.ID}

	tx := ac.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&cafe).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create cafe")
		return
	}
	if err := tx.Create(&admin).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create admin")
		return
	}
	if err := tx.Create(&settings).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create settings")
		return
	}
	tx.Commit()

	token, err := utils.GenerateToken(admin.ID.String(), cafe.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	setSessionCookie(c, token)

	utils.RespondWithMessage(c, http.StatusCreated, gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
		},
		"cafe": gin.H{
			"id":   cafe.ID,
			"slug": cafe.Slug,
			"name": cafe.Name,
		},
	}, "Registration successful")
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var admin models.Admin
	if err := ac.DB.Where("email = ?", strings.TrimSpace(input.Email)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !admin.IsActive || !utils.CheckPasswordHash(input.Password, admin.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(admin.ID.String(), admin.CafeID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	ac.DB.Model(&admin).Update("last_login", &now)

	setSessionCookie(c, token)

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
		},
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	adminID, exists := c.Get("adminId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Admin ID not found in context")
		return
	}

	var admin models.Admin
	if err := ac.DB.Preload("Cafe").First(&admin, "id = ?", adminID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Admin not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
		"cafe": gin.H{
			"id":   admin.Cafe.ID,
			"slug": admin.Cafe.Slug,
			"name": admin.Cafe.Name,
		},
	})
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, 24*3600, "/", "", true, true)
}
