package domain

// UserRole роль пользователя в CRM
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleConsultant UserRole = "CONSULTANT"
	RoleSDR        UserRole = "SDR"
)

// UserStatus статус учетной записи
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// Consultant сотрудник, который может проводить встречи
// В расписании участвуют только активные пользователи с ролями CONSULTANT и SDR
type Consultant struct {
	ID     int64
	Name   string
	Role   UserRole
	Status UserStatus
}

// CanHoldMeetings проверяет, участвует ли пользователь в расписании встреч
func (c *Consultant) CanHoldMeetings() bool {
	if c.Status != UserStatusActive {
		return false
	}
	for _, role := range SchedulingRoles {
		if c.Role == role {
			return true
		}
	}
	return false
}
