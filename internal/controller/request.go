package controller

import (
	"simple-notes-be/internal/dto"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

// parsePageQuery reads ?page and ?limit, defaulting to the first page of
// dto.DefaultLimit items.
func parsePageQuery(ctx *fiber.Ctx) (dto.PageQuery, error) {
	query := dto.PageQuery{Page: dto.DefaultPage, Limit: dto.DefaultLimit}
	if err := ctx.QueryParser(&query); err != nil {
		return query, apperror.Validation("invalid query parameters")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return query, err
	}
	return query, nil
}
