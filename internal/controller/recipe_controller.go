package controller

import (
	"ai-foodchat-be/internal/dto"
	"ai-foodchat-be/internal/pkg/serverutils"
	"ai-foodchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRecipeController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type recipeController struct {
	recipeService service.IRecipeService
}

func NewRecipeController(recipeService service.IRecipeService) IRecipeController {
	return &recipeController{
		recipeService: recipeService,
	}
}

func (c *recipeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recipe/v1")
	h.Get("search", c.Search)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *recipeController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateRecipeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recipeService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create recipe", res))
}

func (c *recipeController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid recipe id")
	}

	res, err := c.recipeService.GetById(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show recipe", res))
}

func (c *recipeController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRecipesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recipeService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search recipes", res))
}

func (c *recipeController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid recipe id")
	}

	if err := c.recipeService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete recipe", nil))
}
