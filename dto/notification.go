package dto

import "github.com/fastbite-labs/fastbite-api/model"

type CreateNotificationRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=ORDER_STATUS TICKET_RESPONSE SYSTEM PROMOTION"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
	Link    string `json:"link,omitempty" validate:"omitempty,max=512"`
}

func (r CreateNotificationRequest) Validate() error {
	return validate.Struct(r)
}

type BulkNotificationRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1,dive,required"`
	Type    string   `json:"type" validate:"required,oneof=ORDER_STATUS TICKET_RESPONSE SYSTEM PROMOTION"`
	Title   string   `json:"title" validate:"required,max=200"`
	Message string   `json:"message" validate:"required"`
	Link    string   `json:"link,omitempty" validate:"omitempty,max=512"`
}

func (r BulkNotificationRequest) Validate() error {
	return validate.Struct(r)
}

type NotificationListResponse struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unreadCount"`
}
