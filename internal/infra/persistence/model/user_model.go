package model

import (
	"usersync/internal/domain/entity"
)

// UserModel represents the stored user document
type UserModel struct {
	UserID  string `bson:"user_id" docstore:"user_id"`
	Name    string `bson:"name" docstore:"name"`
	Email   string `bson:"email" docstore:"email"`
	Address string `bson:"address" docstore:"address"`
}

// ToDomain converts UserModel to domain entity
func (m *UserModel) ToDomain() *entity.User {
	return &entity.User{
		UserID:  m.UserID,
		Name:    m.Name,
		Email:   m.Email,
		Address: m.Address,
	}
}

// FromDomainUser converts domain entity to UserModel
func FromDomainUser(user *entity.User) *UserModel {
	return &UserModel{
		UserID:  user.UserID,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
	}
}
