package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(restaurantID int) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) MenuURL(restaurantID int) string {
	return fmt.Sprintf("%s/restaurants/%d/menu", strings.TrimRight(g.BaseURL, "/"), restaurantID)
}

func (g DefaultQRGenerator) Generate(restaurantID int) ([]byte, error) {
	return qrcode.Encode(g.MenuURL(restaurantID), qrcode.Medium, 256)
}

// QRService renders a menu link QR code for an existing restaurant.
type QRService struct {
	repo      RestaurantRepository
	generator QRGenerator
}

func NewQRService(repo RestaurantRepository, generator QRGenerator) *QRService {
	return &QRService{repo: repo, generator: generator}
}

func (s *QRService) MenuQRCode(ctx context.Context, restaurantID int) ([]byte, error) {
	if _, err := s.repo.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.generator.Generate(restaurantID)
}

var _ QRServiceInterface = (*QRService)(nil)
