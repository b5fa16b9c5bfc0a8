package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-customers/internal/domain"
	customersvc "retail-customers/internal/service/customer"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type customerHandler struct {
	svc    CustomerService
	logger *zap.Logger
}

type addressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type createCustomerRequest struct {
	FirstName       string         `json:"firstName"`
	LastName        string         `json:"lastName"`
	Email           string         `json:"email"`
	PhoneNumber     string         `json:"phoneNumber"`
	Address         addressRequest `json:"address"`
	AvailableCredit *float64       `json:"availableCredit"`
}

type updateCustomerRequest struct {
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phoneNumber"`
	Address     addressRequest `json:"address"`
}

type addCreditRequest struct {
	Amount *float64 `json:"amount"`
}

type customerDTO struct {
	ID              string     `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	FullName        string     `json:"fullName"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phoneNumber"`
	Address         addressDTO `json:"address"`
	AvailableCredit moneyDTO   `json:"availableCredit"`
	CreatedAt       string     `json:"createdAt"`
	UpdatedAt       string     `json:"updatedAt"`
}

type addressDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type moneyDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func toCustomerDTO(c *domain.Customer) customerDTO {
	addr := c.Address()
	credit := c.AvailableCredit()
	return customerDTO{
		ID:          c.ID().String(),
		FirstName:   c.FirstName(),
		LastName:    c.LastName(),
		FullName:    c.FullName(),
		Email:       c.Email().String(),
		PhoneNumber: c.Phone().String(),
		Address: addressDTO{
			Street:     addr.Street(),
			City:       addr.City(),
			PostalCode: addr.PostalCode(),
			Country:    addr.Country(),
		},
		AvailableCredit: moneyDTO{
			Amount:   credit.Amount(),
			Currency: credit.Currency(),
		},
		CreatedAt: c.CreatedAt().UTC().Format(timestampLayout),
		UpdatedAt: c.UpdatedAt().UTC().Format(timestampLayout),
	}
}

func toCustomerDTOs(list []*domain.Customer) []customerDTO {
	out := make([]customerDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerDTO(c))
	}
	return out
}

func (a addressRequest) toInput() customersvc.AddressInput {
	return customersvc.AddressInput{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// bindBody decodes the JSON body into dst and answers 400 on failure.
func bindBody(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(c, http.StatusBadRequest, "Request body is required")
		} else {
			respondError(c, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		}
		return false
	}
	return true
}

func (h *customerHandler) create(c *gin.Context) {
	var req createCustomerRequest
	if !bindBody(c, &req) {
		return
	}
	cust, err := h.svc.Create(c.Request.Context(), customersvc.CreateInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Address:         req.Address.toInput(),
		AvailableCredit: req.AvailableCredit,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, toCustomerDTO(cust))
}

func (h *customerHandler) get(c *gin.Context) {
	cust, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, toCustomerDTO(cust))
}

func (h *customerHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, toCustomerDTOs(list))
}

func (h *customerHandler) listByCredit(c *gin.Context) {
	ascending := c.Query("order") == "asc"
	list, err := h.svc.ListByCredit(c.Request.Context(), ascending)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, toCustomerDTOs(list))
}

func (h *customerHandler) update(c *gin.Context) {
	var req updateCustomerRequest
	if !bindBody(c, &req) {
		return
	}
	cust, err := h.svc.Update(c.Request.Context(), c.Param("id"), customersvc.UpdateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address.toInput(),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, toCustomerDTO(cust))
}

func (h *customerHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *customerHandler) addCredit(c *gin.Context) {
	var req addCreditRequest
	if !bindBody(c, &req) {
		return
	}
	if req.Amount == nil {
		respondError(c, http.StatusBadRequest, "Credit amount is required")
		return
	}
	cust, err := h.svc.AddCredit(c.Request.Context(), c.Param("id"), *req.Amount)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, toCustomerDTO(cust))
}
