package validators

import (
	"fmt"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
)

func ValidateRegisterRequest(req *models.RegisterRequest) error {
	if !utils.IsValidUsername(req.Username) {
		return fmt.Errorf("username must be 3-20 characters, letters, digits and underscores only")
	}
	if !utils.IsValidEmail(req.Email) {
		return fmt.Errorf("invalid email address")
	}
	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		return err
	}
	return utils.ValidateStruct(req)
}

func ValidateLoginRequest(req *models.LoginRequest) error {
	if req.Username == "" || req.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}

func ValidateUpdateProfileRequest(req *models.UpdateProfileRequest) error {
	return utils.ValidateStruct(req)
}
