package models

// UploadResult describes an image stored in the object storage.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	Version   int64  `json:"version"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
}

// Transformation is an on-the-fly image transformation applied when the
// delivery URL is built.
type Transformation struct {
	Crop   string
	Width  int
	Height int
}

// AvatarTransformation is applied to every uploaded avatar.
var AvatarTransformation = Transformation{Crop: "fill", Width: 250, Height: 250}
