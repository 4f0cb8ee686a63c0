package member

type MemberRequest struct {
	Name  string `json:"name" binding:"required" validate:"required"`
	Phone string `json:"phone" binding:"required" validate:"required"`
}
