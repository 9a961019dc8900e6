package http

import (
	"time"

	"freelance/internal/core/application/usecases/queries"
	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
)

type CreateOrderRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Scope       string `json:"scope"`
	TechStack   string `json:"techStack"`
	Budget      int64  `json:"budget" validate:"gte=0"`
}

type AssignPerformerRequest struct {
	PerformerID int64 `json:"performerId" validate:"required,gt=0"`
}

type ConfirmOrderDoneRequest struct {
	Done    bool  `json:"done"`
	OnCheck *bool `json:"onCheck"`
}

type RequestCorrectionRequest struct {
	PerformerID int64 `json:"performerId" validate:"required,gt=0"`
}

type CreateReviewRequest struct {
	Name string `json:"name" validate:"required"`
	Rate int    `json:"rate" validate:"required,min=1,max=5"`
	Text string `json:"text"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type VerificationCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmVerificationCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type OrderResponse struct {
	ID          int64      `json:"id"`
	CustomerID  int64      `json:"customerId"`
	PerformerID *int64     `json:"performerId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Scope       string     `json:"scope"`
	TechStack   string     `json:"techStack"`
	Budget      int64      `json:"budget"`
	Status      string     `json:"status"`
	PublishedAt time.Time  `json:"publishedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	ReplyBind   int        `json:"replyBind"`
}

type ChatResponse struct {
	ID            int64      `json:"id"`
	RoomName      string     `json:"roomName"`
	CustomerID    int64      `json:"customerId"`
	PerformerID   int64      `json:"performerId"`
	Side          string     `json:"side"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	Unread        int64      `json:"unread"`
}

type MessageResponse struct {
	ID         int64     `json:"id"`
	ChatID     int64     `json:"chatId"`
	SenderID   int64     `json:"senderId"`
	SenderType string    `json:"senderType"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	OrderID   *int64    `json:"orderId,omitempty"`
}

type ReviewResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Rate         int       `json:"rate"`
	Text         string    `json:"text"`
	ReviewerType string    `json:"reviewerType"`
	OrderID      *int64    `json:"orderId,omitempty"`
	CustomerID   int64     `json:"customerId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func optionalID(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	v := id.Int64()
	return &v
}

func toOrderResponses(views []queries.OrderView) []OrderResponse {
	resp := make([]OrderResponse, len(views))
	for i, v := range views {
		resp[i] = OrderResponse{
			ID:          v.ID.Int64(),
			CustomerID:  v.CustomerID.Int64(),
			PerformerID: optionalID(v.PerformerID),
			Title:       v.Title,
			Description: v.Description,
			Scope:       v.Scope,
			TechStack:   v.TechStack,
			Budget:      v.Budget,
			Status:      v.Status.String(),
			PublishedAt: v.PublishedAt,
			StartedAt:   v.StartedAt,
			EndedAt:     v.EndedAt,
			ReplyBind:   v.ReplyBind,
		}
	}
	return resp
}

func toChatResponses(views []queries.ChatView) []ChatResponse {
	resp := make([]ChatResponse, len(views))
	for i, v := range views {
		resp[i] = ChatResponse{
			ID:            v.ID.Int64(),
			RoomName:      string(v.RoomName),
			CustomerID:    v.CustomerID.Int64(),
			PerformerID:   v.PerformerID.Int64(),
			Side:          v.Side.String(),
			LastMessageAt: v.LastMessageAt,
			Unread:        v.Unread,
		}
	}
	return resp
}

func toMessageResponse(m *chat.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID().Int64(),
		ChatID:     m.ChatID().Int64(),
		SenderID:   m.SenderID().Int64(),
		SenderType: m.SenderType().String(),
		Text:       m.Text(),
		CreatedAt:  m.CreatedAt(),
	}
}

func toNotificationResponses(views []queries.NotificationView) []NotificationResponse {
	resp := make([]NotificationResponse, len(views))
	for i, v := range views {
		resp[i] = NotificationResponse{
			ID:        v.ID.Int64(),
			Type:      v.Type.String(),
			Title:     v.Title,
			Message:   v.Message,
			IsRead:    v.IsRead,
			CreatedAt: v.CreatedAt,
			OrderID:   optionalID(v.OrderID),
		}
	}
	return resp
}

func toReviewResponses(views []queries.ReviewView) []ReviewResponse {
	resp := make([]ReviewResponse, len(views))
	for i, v := range views {
		resp[i] = ReviewResponse{
			ID:           v.ID.Int64(),
			Name:         v.Name,
			Rate:         v.Rate,
			Text:         v.Text,
			ReviewerType: v.ReviewerType.String(),
			OrderID:      optionalID(v.OrderID),
			CustomerID:   v.CustomerID.Int64(),
			CreatedAt:    v.CreatedAt,
		}
	}
	return resp
}
