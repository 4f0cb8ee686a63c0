package staff

type StaffRequest struct {
	Name string `json:"name" binding:"required" validate:"required"`
}
