package handler

import (
	"time"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type registerRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	Username        string `json:"username"         validate:"required,max=50"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name"       validate:"required,max=50"`
	LastName        string `json:"last_name"        validate:"required,max=50"`
	Role            string `json:"role"             validate:"required"`
	Skills          string `json:"skills"           validate:"max=500"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"            validate:"required"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type adminCreateUserRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Username  string `json:"username"   validate:"required,max=50"`
	Password  string `json:"password"   validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name"  validate:"required,max=50"`
	RoleID    int    `json:"role_id"    validate:"required"`
	Skills    string `json:"skills"     validate:"max=500"`
}

type updateUserRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Username  string `json:"username"   validate:"required,max=50"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name"  validate:"required,max=50"`
	RoleID    int    `json:"role_id"    validate:"required"`
}

type updateTutorProfileRequest struct {
	Skills       string   `json:"skills"        validate:"max=500"`
	HourlyRate   *float64 `json:"hourly_rate"   validate:"omitempty,gte=0"`
	Bio          *string  `json:"bio"           validate:"omitempty,max=2000"`
	Availability *string  `json:"availability"  validate:"omitempty,max=200"`
}

// --- Response types ---

type accountResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      string     `json:"role"`
	RoleID    int        `json:"role_id"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type tutorProfileResponse struct {
	ID            int64     `json:"id"`
	Skills        []string  `json:"skills"`
	HourlyRate    *float64  `json:"hourly_rate"`
	AverageRating *float64  `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	Bio           *string   `json:"bio"`
	Availability  *string   `json:"availability"`
	CreatedAt     time.Time `json:"created_at"`
}

type profileResponse struct {
	Account       accountResponse        `json:"account"`
	TutorProfiles []tutorProfileResponse `json:"tutor_profiles"`
}

type registerResponse struct {
	User accountResponse `json:"user"`
}

type loginResponse struct {
	Token    string          `json:"token"`
	Identity domain.Identity `json:"identity"`
}

type searchResponse struct {
	Tutors          []domain.TutorCard `json:"tutors"`
	AvailableSkills []string           `json:"available_skills"`
	Sort            string             `json:"sort"`
}

type skillsResponse struct {
	Skills []string `json:"skills"`
}

type statsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	TotalTutors   int64 `json:"total_tutors"`
	TotalStudents int64 `json:"total_students"`
}
