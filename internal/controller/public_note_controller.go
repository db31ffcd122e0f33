package controller

import (
	"simple-notes-be/internal/pkg/serverutils"
	"simple-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPublicNoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type publicNoteController struct {
	noteService service.INoteService
}

func NewPublicNoteController(noteService service.INoteService) IPublicNoteController {
	return &publicNoteController{
		noteService: noteService,
	}
}

func (c *publicNoteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Get("", c.List)
	h.Get("/:id", c.Show)
}

func (c *publicNoteController) List(ctx *fiber.Ctx) error {
	query, err := parsePageQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.ListPublicNotes(ctx.UserContext(), query.Page, query.Limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list public notes", res))
}

func (c *publicNoteController) Show(ctx *fiber.Ctx) error {
	res, err := c.noteService.GetPublicNote(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show public note", res))
}
