package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"filter-backend/internal/account"
	"filter-backend/internal/apperror"
	"filter-backend/internal/middleware"
	"filter-backend/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type RegisterCustomerRequest struct {
	Name     string `json:"name" form:"name"`
	Phone    string `json:"phone" form:"phone"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func Login(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/login"

		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		result, err := accounts.Login(ctx, account.LoginInput{
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			respondError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Login successful",
			"user":        result.User,
			"accessToken": result.AccessToken,
			"expiresIn":   result.ExpiresIn,
		})
	}
}

func RegisterCustomer(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/register-customer"

		var req RegisterCustomerRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		customer, err := accounts.RegisterCustomer(ctx, account.CustomerInput{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"message":    "Customer registered successfully",
			"customerId": customer.ID.Hex(),
			"customer": gin.H{
				"_id":   customer.ID.Hex(),
				"name":  customer.Name,
				"phone": customer.Phone,
				"email": customer.Email,
				"type":  customer.Type,
			},
		})
	}
}

func RegisterProvider(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/register"

		input, err := parseProviderRequest(c)
		if err != nil {
			respondError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
		defer cancel()

		provider, err := accounts.RegisterProvider(ctx, input)
		if err != nil {
			respondError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"message":    "Registration successful",
			"providerId": provider.ID.Hex(),
			"provider":   provider,
		})
	}
}

func parseProviderRequest(c *gin.Context) (account.ProviderInput, error) {
	form, err := readForm(c)
	if err != nil {
		return account.ProviderInput{}, err
	}

	var input account.ProviderInput
	input.Type, _ = formString(form, "type")
	input.WorkshopName, _ = formString(form, "workshopName")
	input.OwnerName, _ = formString(form, "ownerName")
	input.CRNumber, _ = formString(form, "crNumber")
	input.VATNumber, _ = formString(form, "vatNumber")
	input.FullName, _ = formString(form, "fullName")
	input.IqamaID, _ = formString(form, "iqamaId")
	input.Email, _ = formString(form, "email")
	input.MobileNumber, _ = formString(form, "mobileNumber")
	input.Address, _ = formString(form, "address")
	input.Password, _ = form.value("password")

	services, _, err := formList(form, "services")
	if err != nil {
		return account.ProviderInput{}, err
	}
	input.Services = services

	outdoor, _ := formString(form, "offersOutdoorServices")
	input.OffersOutdoorServices = outdoor == "true"

	// Coordinates that do not parse leave the location unset.
	if lat, ok, err := formFloat(form, "latitude"); ok && err == nil {
		input.Latitude = &lat
	}
	if lng, ok, err := formFloat(form, "longitude"); ok && err == nil {
		input.Longitude = &lng
	}

	if input.Logo, err = formFile(c, "logo"); err != nil {
		return account.ProviderInput{}, err
	}
	if input.FrontPhoto, err = formFile(c, "frontPhoto"); err != nil {
		return account.ProviderInput{}, err
	}
	return input, nil
}

// Me echoes the authenticated account's token claims.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/me"

		userID := c.GetString(middleware.UserIDKey)
		if userID == "" {
			respondError(c, route, apperror.Auth("unauthorized"))
			return
		}
		userType := models.FirstNonEmpty(c.GetString(middleware.UserTypeKey), models.AccountTypeCustomer)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user": gin.H{
				"id":   userID,
				"type": userType,
			},
		})
	}
}
