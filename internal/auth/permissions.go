package auth

import "hirehub/internal/models"

// Правила записи для REST коллекций. Чтение публичное.

func IsAdmin(c *Claims) bool {
	return c != nil && c.Role == models.UserRoleAdmin
}

// CanWriteUser - сам пользователь или админ
func CanWriteUser(c *Claims, userID string) bool {
	return c != nil && (IsAdmin(c) || c.UserID == userID)
}

// CanWriteJob - владелец вакансии или админ
func CanWriteJob(c *Claims, job models.Job) bool {
	return c != nil && (IsAdmin(c) || job.EmployerID == c.UserID)
}

// CanCreateJob - работодатель (от своего имени) или админ
func CanCreateJob(c *Claims, job models.Job) bool {
	if c == nil {
		return false
	}
	if IsAdmin(c) {
		return true
	}
	return c.Role == models.UserRoleEmployer && job.EmployerID == c.UserID
}

// CanWriteApplication - откликнувшийся соискатель, работодатель вакансии или админ
func CanWriteApplication(c *Claims, app models.Application, job *models.Job) bool {
	if c == nil {
		return false
	}
	if IsAdmin(c) || app.SeekerID == c.UserID {
		return true
	}
	return job != nil && job.EmployerID == c.UserID
}
