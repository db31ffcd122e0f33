package controller

import (
	"simple-notes-be/internal/dto"
	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/mapper"
	"simple-notes-be/internal/pkg/serverutils"
	"simple-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	authService service.IAuthService
	auth        fiber.Handler
	noteMapper  *mapper.NoteMapper
}

// NewNoteController serves the personal notebook under /me/notes. auth is the
// authentication middleware shared by every protected route.
func NewNoteController(noteService service.INoteService, authService service.IAuthService, auth fiber.Handler) INoteController {
	return &noteController{
		noteService: noteService,
		authService: authService,
		auth:        auth,
		noteMapper:  mapper.NewNoteMapper(),
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/me/notes", c.auth, c.ensureUser)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get("/:id", c.Show)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

// ensureUser creates the account record on first use, so anonymous visitors
// can keep notes without an explicit sign-up step.
func (c *noteController) ensureUser(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}
	if _, err := c.authService.EnsureUser(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.Next()
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	note, err := c.noteService.CreateNote(ctx.UserContext(), id.UserId, req.Title, req.Content)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create note", c.noteMapper.ToPrivateResponse(note)))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	query, err := parsePageQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.ListUserNotes(ctx.UserContext(), id.UserId, query.Page, query.Limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	note, err := c.noteService.GetUserNote(ctx.UserContext(), id.UserId, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", c.noteMapper.ToPrivateResponse(note)))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	update := service.NoteUpdate{Title: req.Title, Content: req.Content}
	if req.IsPublic != nil {
		privacy := entity.PrivacyPrivate
		if *req.IsPublic {
			privacy = entity.PrivacyPublic
		}
		update.Privacy = &privacy
	}

	note, err := c.noteService.UpdateUserNote(ctx.UserContext(), id.UserId, ctx.Params("id"), update)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", c.noteMapper.ToPrivateResponse(note)))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.DeleteUserNote(ctx.UserContext(), id.UserId, ctx.Params("id")); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
