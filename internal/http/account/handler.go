package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daileit/wedding-planner/internal/auth"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/http/authn"
	"github.com/daileit/wedding-planner/internal/http/resource"
	"github.com/daileit/wedding-planner/internal/http/respond"
	"github.com/daileit/wedding-planner/internal/user"
)

type TokenIssuer interface {
	Issue(u *domain.User) (string, time.Time, error)
}

type Handler struct {
	svc    *user.Service
	tokens TokenIssuer
}

func NewHandler(svc *user.Service, tokens TokenIssuer) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// AuthRoutes serves /auth. Upgrading needs the guest's own token.
func (h *Handler) AuthRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/guest", h.guest)
	r.With(authn.Require).Post("/upgrade", h.upgrade)
}

// MeRoutes serves /me.
func (h *Handler) MeRoutes(r chi.Router) {
	r.Use(authn.Require)
	r.Get("/", h.me)
	r.Patch("/", h.updateMe)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req registerRequest) params() user.RegisterParams {
	return user.RegisterParams{Name: req.Name, Email: req.Email, Password: req.Password}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.session(w, r, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.svc.Authenticate(r.Context(), user.LoginParams{Email: req.Email, Password: req.Password})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.session(w, r, http.StatusOK, u)
}

func (h *Handler) guest(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.CreateGuest(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.session(w, r, http.StatusCreated, u)
}

// upgrade returns a fresh token because the old one still says guest.
func (h *Handler) upgrade(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.svc.UpgradeGuest(r.Context(), auth.PrincipalFrom(r.Context()), req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.session(w, r, http.StatusOK, u)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), auth.PrincipalFrom(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.NewUser(u))
}

type updateMeRequest struct {
	Name  *string                 `json:"name"`
	Image domain.Nullable[string] `json:"image"`
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), auth.PrincipalFrom(r.Context()), user.ProfileParams{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.NewUser(u))
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request, status int, u *domain.User) {
	token, expires, err := h.tokens.Issue(u)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, status, resource.Session{Token: token, ExpiresAt: expires, User: resource.NewUser(u)})
}
