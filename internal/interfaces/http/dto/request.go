package dto

// DisconnectRequest asks to remove one connected account
type DisconnectRequest struct {
	AccountID string `json:"accountId" binding:"required"`
}

// PackRequest asks to mark order items ready to ship under one account
type PackRequest struct {
	AccountID    string  `json:"accountId" binding:"required"`
	OrderItemIDs []int64 `json:"orderItemIds" binding:"required,min=1"`
}
