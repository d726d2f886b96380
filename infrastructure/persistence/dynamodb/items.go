package dynamodb

import (
	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
	"essay-backend/pkg/utils"
)

const (
	entityTypeUser  = "USER"
	entityTypeEssay = "ESSAY"
)

func userPK(userID string) string { return "USER#" + userID }

func essaySK(essayID string) string { return "ESSAY#" + essayID }

func emailKey(email string) string { return "USER#EMAIL#" + email }

func ownerIndexPK(userID string) string { return "ESSAY#USER#" + userID }

func createdIndexSK(createdAt string) string { return "ESSAY#" + createdAt }

func statusIndexPK(status valueobjects.EssayStatus) string {
	return "ESSAY#STATUS#" + string(status)
}

type essayItem struct {
	PK            string               `dynamodbav:"PK"`
	SK            string               `dynamodbav:"SK"`
	GSI1PK        string               `dynamodbav:"GSI1PK"`
	GSI1SK        string               `dynamodbav:"GSI1SK"`
	GSI2PK        string               `dynamodbav:"GSI2PK"`
	GSI2SK        string               `dynamodbav:"GSI2SK"`
	Type          string               `dynamodbav:"type"`
	EssayID       string               `dynamodbav:"essayId"`
	UserID        string               `dynamodbav:"userId"`
	Title         string               `dynamodbav:"title"`
	Content       string               `dynamodbav:"content,omitempty"`
	FileKey       string               `dynamodbav:"fileKey,omitempty"`
	FileType      string               `dynamodbav:"fileType,omitempty"`
	Status        string               `dynamodbav:"status"`
	ExtractedText string               `dynamodbav:"extractedText,omitempty"`
	Correction    *entities.Correction `dynamodbav:"correction,omitempty"`
	AIProvider    string               `dynamodbav:"aiProvider"`
	CreatedAt     string               `dynamodbav:"createdAt"`
	UpdatedAt     string               `dynamodbav:"updatedAt"`
}

func newEssayItem(e *entities.Essay) essayItem {
	created := utils.FormatTimestamp(e.CreatedAt)
	return essayItem{
		PK:            userPK(e.UserID),
		SK:            essaySK(e.ID),
		GSI1PK:        statusIndexPK(e.Status),
		GSI1SK:        createdIndexSK(created),
		GSI2PK:        ownerIndexPK(e.UserID),
		GSI2SK:        createdIndexSK(created),
		Type:          entityTypeEssay,
		EssayID:       e.ID,
		UserID:        e.UserID,
		Title:         e.Title,
		Content:       e.Content,
		FileKey:       e.FileKey,
		FileType:      string(e.FileType),
		Status:        string(e.Status),
		ExtractedText: e.ExtractedText,
		Correction:    e.Correction,
		AIProvider:    string(e.AIProvider),
		CreatedAt:     created,
		UpdatedAt:     utils.FormatTimestamp(e.UpdatedAt),
	}
}

func (i essayItem) toEntity() *entities.Essay {
	created, _ := utils.ParseTimestamp(i.CreatedAt)
	updated, _ := utils.ParseTimestamp(i.UpdatedAt)
	return &entities.Essay{
		ID:            i.EssayID,
		UserID:        i.UserID,
		Title:         i.Title,
		Content:       i.Content,
		FileKey:       i.FileKey,
		FileType:      valueobjects.FileType(i.FileType),
		Status:        valueobjects.EssayStatus(i.Status),
		ExtractedText: i.ExtractedText,
		Correction:    i.Correction,
		AIProvider:    valueobjects.AIProvider(i.AIProvider),
		CreatedAt:     created,
		UpdatedAt:     updated,
	}
}

type userItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	GSI1PK      string `dynamodbav:"GSI1PK"`
	GSI1SK      string `dynamodbav:"GSI1SK"`
	Type        string `dynamodbav:"type"`
	UserID      string `dynamodbav:"userId"`
	Email       string `dynamodbav:"email"`
	Name        string `dynamodbav:"name"`
	PhoneNumber string `dynamodbav:"phoneNumber,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt"`
}

func newUserItem(u *entities.User) userItem {
	return userItem{
		PK:          userPK(u.ID),
		SK:          userPK(u.ID),
		GSI1PK:      emailKey(u.Email),
		GSI1SK:      emailKey(u.Email),
		Type:        entityTypeUser,
		UserID:      u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   utils.FormatTimestamp(u.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(u.UpdatedAt),
	}
}

func (i userItem) toEntity() *entities.User {
	created, _ := utils.ParseTimestamp(i.CreatedAt)
	updated, _ := utils.ParseTimestamp(i.UpdatedAt)
	return &entities.User{
		ID:          i.UserID,
		Email:       i.Email,
		Name:        i.Name,
		PhoneNumber: i.PhoneNumber,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}
}
