package ownerservice

// Owner модель владельца EV из OwnerService
type Owner struct {
	NIC       string `json:"nic"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

// FullName возвращает полное имя владельца
func (o *Owner) FullName() string {
	if o.FirstName == "" {
		return o.LastName
	}
	if o.LastName == "" {
		return o.FirstName
	}
	return o.FirstName + " " + o.LastName
}

// ErrorResponse модель ошибки от OwnerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
