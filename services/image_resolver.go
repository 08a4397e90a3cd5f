package services

import (
	"log"

	"github.com/furnitune/furnitune-api/models"
	"github.com/furnitune/furnitune-api/utils"
)

// ResolveImageURL turns a stored image reference into a URL a client can load.
// Data URIs and absolute URLs pass through, upload keys go through the image
// service, and anything else is treated as a bundled asset path.
// It returns nil for an empty reference or an upload that cannot be resolved.
func ResolveImageURL(ref string) *string {
	if ref == "" {
		return nil
	}

	if utils.IsInlineImage(ref) {
		return &ref
	}

	if utils.IsUploadKey(ref) {
		imageService := GetImageService()
		if imageService == nil {
			return nil
		}
		url, err := imageService.GetImageURL(ref)
		if err != nil || url == "" {
			log.Printf("Failed to resolve image %s: %v", ref, err)
			return nil
		}
		return &url
	}

	url := utils.AssetURL(ref)
	return &url
}

// ResolveUserImage fills in the user's resolved profile image
func ResolveUserImage(user *models.User) {
	if user == nil || user.ProfileImage == nil {
		return
	}
	user.ProfileSrc = ResolveImageURL(*user.ProfileImage)
}

// ResolveProductImages fills in the resolved image of every product
func ResolveProductImages(products []models.Product) {
	for i := range products {
		products[i].ImageSrc = ResolveImageURL(products[i].ImageURL)
	}
}

// ResolveCartImages fills in the resolved image of every cart line
func ResolveCartImages(lines []models.CartLine) {
	for i := range lines {
		lines[i].ImageSrc = ResolveImageURL(lines[i].ImageURL)
	}
}

// ResolveOrderImages fills in the resolved image of every ordered product
func ResolveOrderImages(orders []models.Order) {
	for i := range orders {
		for j := range orders[i].Items {
			if product := orders[i].Items[j].Product; product != nil {
				product.ImageSrc = ResolveImageURL(product.ImageURL)
			}
		}
	}
}

// ResolveReviewImages fills in the resolved product image of every review
func ResolveReviewImages(reviews []models.UserReview) {
	for i := range reviews {
		reviews[i].ImageSrc = ResolveImageURL(reviews[i].ProductImage)
	}
}
