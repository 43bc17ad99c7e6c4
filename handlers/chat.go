package handlers

import (
	"net/http"

	"pizzeria/middleware"
	"pizzeria/models"
	"pizzeria/services/chat"
	"pizzeria/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	Service *chat.Service
}

func (h *ChatHandler) CreateRoom(c *gin.Context) {
	var req models.ChatRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat room", err.Error())
		return
	}
	room, token, err := h.Service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create chat room", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"room": room, "token": token})
}

func (h *ChatHandler) Rooms(c *gin.Context) {
	rooms, err := h.Service.Rooms(c.Request.Context(), queryBool(c, "active_only", true))
	if err != nil {
		utils.RespondError(c, "Failed to list chat rooms", err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *ChatHandler) Messages(c *gin.Context) {
	msgs, err := h.Service.Messages(c.Request.Context(), c.Param("id"), queryInt(c, "limit", 0))
	if err != nil {
		utils.RespondError(c, "Failed to list messages", err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid message", err.Error())
		return
	}
	msg, err := h.Service.Post(c.Request.Context(), c.Param("id"), req, middleware.IsAdmin(c))
	if err != nil {
		utils.RespondError(c, "Failed to post message", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) CloseRoom(c *gin.Context) {
	room, err := h.Service.Close(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to close chat room", err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *ChatHandler) Status(c *gin.Context) {
	st, err := h.Service.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Chat room not available", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// RoomSocket upgrades a client connection; ChatRoomAuth has already checked the token.
func (h *ChatHandler) RoomSocket(c *gin.Context) {
	if err := h.Service.ServeRoom(c.Writer, c.Request, c.Param("room_id")); err != nil {
		getLogger(c).Warn("Room socket rejected", zap.String("room_id", c.Param("room_id")), zap.Error(err))
		if !c.Writer.Written() {
			utils.RespondError(c, "Chat room not available", err)
		}
	}
}

func (h *ChatHandler) AdminSocket(c *gin.Context) {
	if err := h.Service.ServeAdmin(c.Writer, c.Request); err != nil {
		getLogger(c).Warn("Admin socket failed", zap.Error(err))
	}
}
