package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/app/services"
	"github.com/yigit/studyportal/internal/middleware"
)

// ChatController handles the question-answering chat
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// Ask godoc
// @Summary Ask a question
// @Description Answers a study question, optionally about one resource or a photo. Signed-in users get the exchange stored in a chat; guests only get the answer.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Question"
// @Success 200 {object} dto.APIResponse{data=dto.AskResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Failure 502 {object} dto.ErrorResponse "Generation failed"
// @Router /chat/ask [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	var req dto.AskRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.chatService.Ask(ctx.Request.Context(), middleware.UserID(ctx), middleware.Viewer(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListChats godoc
// @Summary List chats
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Chat}
// @Router /chats [get]
func (c *ChatController) ListChats(ctx *gin.Context) {
	chats, err := c.chatService.List(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chats))
}

// GetChatMessages godoc
// @Summary Get chat messages
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Success 200 {object} dto.APIResponse{data=dto.ChatMessagesResponse}
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Router /chats/{id}/messages [get]
func (c *ChatController) GetChatMessages(ctx *gin.Context) {
	resp, err := c.chatService.Messages(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteChat godoc
// @Summary Delete a chat
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Router /chats/{id} [delete]
func (c *ChatController) DeleteChat(ctx *gin.Context) {
	if err := c.chatService.Delete(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Chat deleted"}))
}
