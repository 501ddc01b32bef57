package handler

import (
	"net/http"
	"regexp"
	"time"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"

	"github.com/Pangeneses/NeonServer/internal/domain"
	"github.com/Pangeneses/NeonServer/internal/pagination"
	"github.com/Pangeneses/NeonServer/internal/service"
	"github.com/Pangeneses/NeonServer/internal/utils"
)

// userPayload is a user without credentials. The hash never leaves the
// service layer but the field is skipped here as well.
type userPayload struct {
	ID          string     `json:"ID"`
	UserName    string     `json:"UserName"`
	Avatar      string     `json:"Avatar,omitempty"`
	JournalDesc string     `json:"JournalDesc,omitempty"`
	FirstName   string     `json:"FirstName"`
	LastName    string     `json:"LastName"`
	AddressOne  string     `json:"AddressOne,omitempty"`
	AddressTwo  string     `json:"AddressTwo,omitempty"`
	City        string     `json:"City,omitempty"`
	Region      string     `json:"Region,omitempty"`
	PostCode    string     `json:"Post,omitempty"`
	Country     string     `json:"Country,omitempty"`
	EMail       string     `json:"EMail,omitempty"`
	Cellphone   string     `json:"Cellphone,omitempty"`
	DateOfBirth *time.Time `json:"DateOfBirth,omitempty"`
	CreatedDate time.Time  `json:"CreatedDate"`
	Role        string     `json:"Role"`
}

func toUserPayload(user domain.User) userPayload {
	payload := userPayload{
		ID:          user.Id.Hex(),
		UserName:    user.UserName,
		Avatar:      user.Avatar,
		JournalDesc: user.JournalDesc,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		AddressOne:  user.AddressOne,
		AddressTwo:  user.AddressTwo,
		City:        user.City,
		Region:      user.Region,
		PostCode:    user.PostCode,
		Country:     user.Country,
		EMail:       user.EMail,
		Cellphone:   user.Cellphone,
		CreatedDate: user.CreatedDate,
		Role:        user.Role,
	}
	if !user.DateOfBirth.IsZero() {
		payload.DateOfBirth = &user.DateOfBirth
	}
	return payload
}

type registerUserRequest struct {
	UserName    string     `validate:"required" json:"UserName"`
	Password    string     `json:"Password"`
	ReEnter     string     `json:"ReEnter"`
	Avatar      string     `json:"Avatar"`
	JournalDesc string     `json:"JournalDesc"`
	FirstName   string     `validate:"required" json:"FirstName"`
	LastName    string     `validate:"required" json:"LastName"`
	AddressOne  string     `json:"AddressOne"`
	AddressTwo  string     `json:"AddressTwo"`
	City        string     `json:"City"`
	Region      string     `json:"Region"`
	PostCode    string     `json:"Post"`
	Country     string     `json:"Country"`
	EMail       string     `json:"EMail"`
	Cellphone   string     `json:"Cellphone"`
	DateOfBirth *time.Time `json:"DateOfBirth"`
	Role        string     `json:"Role"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var body registerUserRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	user := domain.User{
		UserName:    body.UserName,
		Avatar:      body.Avatar,
		JournalDesc: body.JournalDesc,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		AddressOne:  body.AddressOne,
		AddressTwo:  body.AddressTwo,
		City:        body.City,
		Region:      body.Region,
		PostCode:    body.PostCode,
		Country:     body.Country,
		EMail:       body.EMail,
		Cellphone:   body.Cellphone,
		Role:        body.Role,
	}
	if body.DateOfBirth != nil {
		user.DateOfBirth = *body.DateOfBirth
	}

	created, err := h.user.Register(r.Context(), user, body.Password, body.ReEnter)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created",
		"user":    toUserPayload(created),
	})
}

func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserName string `json:"UserName"`
		Password string `json:"Password"`
	}
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}
	if body.UserName == "" || body.Password == "" {
		utils.WriteError(w, &internal_errors.ErrorWithStatusCode{
			Message:    "Missing credentials",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	user, err := h.user.Login(r.Context(), body.UserName, body.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    toUserPayload(user),
	})
}

func (h *Handler) ListedUsers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.user.Listed(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summaries)
}

func (h *Handler) ScanUsers(w http.ResponseWriter, r *http.Request) {
	q := pagination.ParseChunk(r.URL.Query(), "User", h.chunkLimits())

	pattern := r.URL.Query().Get("UserName")
	// An uncompilable pattern is dropped, consistent with the permissive
	// chunk filters.
	if _, err := regexp.Compile(pattern); err != nil {
		pattern = ""
	}

	summaries, err := h.user.Scan(r.Context(), domain.UserScanQuery{
		Pattern:   pattern,
		LastID:    q.LastID,
		Ascending: q.Direction == pagination.Up,
		Limit:     q.Limit,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summaries)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "User")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var body struct {
		UserName    *string    `json:"UserName"`
		Password    *string    `json:"Password"`
		Avatar      *string    `json:"Avatar"`
		JournalDesc *string    `json:"JournalDesc"`
		FirstName   *string    `json:"FirstName"`
		LastName    *string    `json:"LastName"`
		AddressOne  *string    `json:"AddressOne"`
		AddressTwo  *string    `json:"AddressTwo"`
		City        *string    `json:"City"`
		Region      *string    `json:"Region"`
		PostCode    *string    `json:"Post"`
		Country     *string    `json:"Country"`
		EMail       *string    `json:"EMail"`
		Cellphone   *string    `json:"Cellphone"`
		DateOfBirth *time.Time `json:"DateOfBirth"`
	}
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	user, err := h.user.Update(r.Context(), id, service.UserChanges{
		UserName:    body.UserName,
		Password:    body.Password,
		Avatar:      body.Avatar,
		JournalDesc: body.JournalDesc,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		AddressOne:  body.AddressOne,
		AddressTwo:  body.AddressTwo,
		City:        body.City,
		Region:      body.Region,
		PostCode:    body.PostCode,
		Country:     body.Country,
		EMail:       body.EMail,
		Cellphone:   body.Cellphone,
		DateOfBirth: body.DateOfBirth,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated",
		"user":    toUserPayload(user),
	})
}
