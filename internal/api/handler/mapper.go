package handler

import (
	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Skills:    req.Skills,
	}
}

func toAdminCreateInput(req adminCreateUserRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Skills:    req.Skills,
	}
}

func toProfileUpdate(req updateUserRequest) ports.AccountProfileUpdate {
	return ports.AccountProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		RoleID:    domain.RoleID(req.RoleID),
	}
}

func toTutorProfileUpdate(req updateTutorProfileRequest) ports.TutorProfileUpdate {
	return ports.TutorProfileUpdate{
		Skill:        req.Skills,
		HourlyRate:   req.HourlyRate,
		Bio:          req.Bio,
		Availability: req.Availability,
	}
}

// --- Service result → HTTP response ---

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.RoleName(),
		RoleID:    int(a.RoleID),
		CreatedAt: a.CreatedAt.UTC(),
		DeletedAt: a.DeletedAt,
	}
}

func toTutorProfileResponse(p domain.TutorProfile) tutorProfileResponse {
	return tutorProfileResponse{
		ID:            p.ID,
		Skills:        domain.SplitSkills(p.Skill),
		HourlyRate:    p.HourlyRate,
		AverageRating: p.AverageRating,
		TotalReviews:  p.TotalReviews,
		Bio:           p.Bio,
		Availability:  p.Availability,
		CreatedAt:     p.CreatedAt.UTC(),
	}
}

func toProfileResponse(p ports.AccountProfile) profileResponse {
	tutors := make([]tutorProfileResponse, 0, len(p.Tutors))
	for _, t := range p.Tutors {
		tutors = append(tutors, toTutorProfileResponse(t))
	}
	return profileResponse{Account: toAccountResponse(p.Account), TutorProfiles: tutors}
}
