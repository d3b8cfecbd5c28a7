package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-api/internal/domain"
)

// TopicsResponse wraps the topic list.
type TopicsResponse struct {
	Topics []domain.Topic `json:"topics"`
}

// UsersResponse wraps the user list.
type UsersResponse struct {
	Users []domain.User `json:"users"`
}

// ListTopics godoc
// @ID          listTopics
// @Summary     List topics
// @Tags        Topics
// @Produce     json
// @Success     200  {object}  handlers.TopicsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Server Error"
// @Router      /topics [get]
func (h *Handlers) ListTopics(c *gin.Context) {
	topics, err := h.repo.ListTopics(c.Request.Context())
	if err != nil {
		forward(c, err)
		return
	}
	ok(c, http.StatusOK, TopicsResponse{Topics: topics})
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users
// @Tags        Users
// @Produce     json
// @Success     200  {object}  handlers.UsersResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Server Error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		forward(c, err)
		return
	}
	ok(c, http.StatusOK, UsersResponse{Users: users})
}
