package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"levelup/internal/engine"
	"levelup/internal/storage"
)

const bcryptCost = 10

type publicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toPublic(u *storage.User) publicUser {
	return publicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *credentials) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Password = strings.TrimSpace(c.Password)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}
	body.normalize()
	if body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}

	existing, err := s.users.GetByEmail(r.Context(), body.Email)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email_taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcryptCost)
	if err != nil {
		s.serverError(w, err)
		return
	}

	name := body.Name
	if name == "" {
		name = "User"
	}
	user := &storage.User{
		ID:           uuid.NewString(),
		Email:        body.Email,
		Name:         name,
		PasswordHash: string(hash),
	}

	seed := engine.DefaultState()
	seed.User.Name = name
	data, err := engine.EncodeState(seed)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if err := s.users.CreateWithState(r.Context(), user, data); err != nil {
		s.serverError(w, err)
		return
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "user": toPublic(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}
	body.normalize()
	if body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), body.Email)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": toPublic(user)})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), userID(r))
	if err != nil {
		s.serverError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	data, err := s.states.Load(r.Context(), user.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if data == nil {
		seed := engine.DefaultState()
		seed.User.Name = user.Name
		data, err = engine.EncodeState(seed)
		if err != nil {
			s.serverError(w, err)
			return
		}
		if err := s.states.Save(r.Context(), user.ID, data); err != nil {
			s.serverError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"state": data})
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	var body struct {
		State json.RawMessage `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}

	// The blob stays opaque, but it has to be a JSON object.
	var probe map[string]json.RawMessage
	if len(body.State) == 0 || json.Unmarshal(body.State, &probe) != nil {
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}

	if err := s.states.Save(r.Context(), userID(r), body.State); err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"state": body.State})
}

func (s *Server) handleResetState(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), userID(r))
	if err != nil {
		s.serverError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = user.Name
	}

	seed := engine.DefaultState()
	seed.User.Name = name
	data, err := engine.EncodeState(seed)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if err := s.states.Save(r.Context(), user.ID, data); err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"state": data})
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.log.Error("server error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "server_error")
}
