package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shopfront/app/config"
	"shopfront/app/service/cart"
	"shopfront/app/service/catalog"
	"shopfront/app/service/conversation"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Service struct {
	cfg             *config.Config
	catalogSvc      *catalog.Service
	cartSvc         *cart.Service
	conversationSvc *conversation.Service

	app *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		catalogSvc:      do.MustInvoke[*catalog.Service](di),
		cartSvc:         do.MustInvoke[*cart.Service](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	api := s.app.Group("/api")
	api.Post("/sessions", s.createSession)
	api.Post("/chat", s.chat)
	api.Get("/products", s.listProducts)
	api.Get("/products/:id", s.getProduct)
	api.Get("/cart/:session", s.getCart)
	api.Put("/cart/:session/items/:id", s.updateQuantity)
	api.Delete("/cart/:session", s.clearCart)

	return s, nil
}

// Run serves the storefront API until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return s.app.Listen(s.cfg.Server.Addr)
	})

	group.Go(func() error {
		<-ctx.Done()

		return s.app.ShutdownWithTimeout(shutdownTimeout)
	})

	return group.Wait()
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (s *Service) createSession(c *fiber.Ctx) error {
	session := s.conversationSvc.NewSession()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": session.ID,
	})
}

func (s *Service) chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	session, ok := s.conversationSvc.Session(req.SessionID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	start := time.Now()

	reply, err := s.conversationSvc.ProcessMessage(c.UserContext(), session, req.Message)
	if err != nil {
		if errors.Is(err, conversation.ErrTurnInFlight) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}

		return err
	}

	slog.Info("Processed turn",
		"session", session.ID,
		"role", reply.Role,
		"duration", time.Since(start),
	)

	return c.JSON(reply)
}

func (s *Service) listProducts(c *fiber.Ctx) error {
	return c.JSON(s.catalogSvc.All())
}

func (s *Service) getProduct(c *fiber.Ctx) error {
	product, err := s.catalogSvc.GetByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(product)
}

func (s *Service) getCart(c *fiber.Ctx) error {
	return c.JSON(s.cartSvc.Snapshot(c.Params("session")))
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Service) updateQuantity(c *fiber.Ctx) error {
	var req quantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	s.cartSvc.UpdateQuantity(c.Params("session"), c.Params("id"), req.Quantity)

	return c.JSON(s.cartSvc.Snapshot(c.Params("session")))
}

func (s *Service) clearCart(c *fiber.Ctx) error {
	s.cartSvc.Clear(c.Params("session"))

	return c.SendStatus(fiber.StatusNoContent)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	} else {
		slog.Error("Unhandled API error", "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
