package models

// User represents a registered user of the trekking app. The table keeps the
// Spanish column names of the original schema so a pre-existing database keeps
// working; the JSON surface uses the API field names.
type User struct {
	ID           int    `json:"id" gorm:"column:idusuario;primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"column:nombre;type:varchar(100);not null" validate:"required,max=100"`
	Phone        string `json:"phone,omitempty" gorm:"column:telefono;type:varchar(20)"`
	Email        string `json:"email" gorm:"column:correo;type:varchar(100);uniqueIndex;not null" validate:"required,max=100"`
	PasswordHash string `json:"-" gorm:"column:password;type:varchar(255);not null"`
	PhotoRef     string `json:"photoRef,omitempty" gorm:"column:foto;type:text"`
}

// TableName overrides GORM's pluralized default.
func (User) TableName() string {
	return "usuarios"
}

// UserView is the projection of a User returned to callers. It has no
// password hash field at all, so serialization cannot leak the hash.
type UserView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email"`
	PhotoRef string `json:"photoRef,omitempty"`
}

// View returns the caller-facing projection of the user.
func (u User) View() UserView {
	return UserView{
		ID:       u.ID,
		Name:     u.Name,
		Phone:    u.Phone,
		Email:    u.Email,
		PhotoRef: u.PhotoRef,
	}
}
