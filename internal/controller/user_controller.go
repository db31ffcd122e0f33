package controller

import (
	"simple-notes-be/internal/dto"
	"simple-notes-be/internal/mapper"
	"simple-notes-be/internal/pkg/serverutils"
	"simple-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
	auth        fiber.Handler
	userMapper  *mapper.UserMapper
}

func NewUserController(userService service.IUserService, auth fiber.Handler) IUserController {
	return &userController{
		userService: userService,
		auth:        auth,
		userMapper:  mapper.NewUserMapper(),
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	// Registered per route: a /me group would also guard /me/notes.
	r.Get("/me", c.auth, serverutils.RequireRegistered, c.GetProfile)
	r.Patch("/me", c.auth, serverutils.RequireRegistered, c.UpdateProfile)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	user, err := c.userService.GetProfile(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", c.userMapper.ToProfileResponse(user)))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	user, err := c.userService.UpdateProfile(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update profile", c.userMapper.ToProfileResponse(user)))
}
