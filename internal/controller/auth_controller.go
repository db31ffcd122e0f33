package controller

import (
	"time"

	"simple-notes-be/internal/dto"
	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/mapper"
	"simple-notes-be/internal/pkg/serverutils"
	"simple-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Anonymous(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Signup(ctx *fiber.Ctx) error
	Promote(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
}

// CookieConfig controls the session cookie written on sign-in.
type CookieConfig struct {
	Name   string
	Secure bool
}

type authController struct {
	authService service.IAuthService
	auth        fiber.Handler
	cookie      CookieConfig
	userMapper  *mapper.UserMapper
}

func NewAuthController(authService service.IAuthService, auth fiber.Handler, cookie CookieConfig) IAuthController {
	return &authController{
		authService: authService,
		auth:        auth,
		cookie:      cookie,
		userMapper:  mapper.NewUserMapper(),
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/anonymous", c.Anonymous)
	h.Post("/login", c.Login)
	h.Post("/signup", c.Signup)
	h.Post("/promote", c.auth, c.Promote)
	h.Post("/logout", c.Logout)
	h.Get("/session", c.auth, c.Session)
}

func (c *authController) Anonymous(ctx *fiber.Ctx) error {
	var req dto.AnonymousAuthRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.AuthenticateAnonymous(ctx.UserContext(), req.IdToken)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, res.Session)
	return ctx.JSON(serverutils.SuccessResponse("Signed in anonymously", c.toResponse(res.User, res.Session)))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.UserContext(), req.IdToken)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, res.Session)
	return ctx.JSON(serverutils.SuccessResponse("Login success", c.toResponse(res.User, res.Session)))
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.Signup(ctx.UserContext(), req.IdToken, req.DisplayName)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, res.Session)
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Signup success", c.toResponse(res.User, res.Session)))
}

func (c *authController) Promote(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	var req dto.PromoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.Promote(ctx.UserContext(), id, ctx.Cookies(c.cookie.Name), req.IdToken, req.DisplayName)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, res.Session)
	return ctx.JSON(serverutils.SuccessResponse("Account promoted", c.toResponse(res.User, res.Session)))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	if err := c.authService.Logout(ctx.UserContext(), ctx.Cookies(c.cookie.Name)); err != nil {
		return err
	}

	c.clearSessionCookie(ctx)
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out", nil))
}

func (c *authController) Session(ctx *fiber.Ctx) error {
	id, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	user, err := c.authService.EnsureUser(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	session, err := c.authService.Session(ctx.UserContext(), ctx.Cookies(c.cookie.Name))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", c.toResponse(user, session)))
}

func (c *authController) toResponse(user *entity.User, session *entity.Session) dto.AuthResponse {
	res := dto.AuthResponse{User: c.userMapper.ToProfileResponse(user)}
	if session != nil {
		expires := session.ExpiresAt
		res.ExpiresAt = &expires
	}
	return res
}

func (c *authController) setSessionCookie(ctx *fiber.Ctx, session *entity.Session) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.cookie.Name,
		Value:    session.Id,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   c.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (c *authController) clearSessionCookie(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   c.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
