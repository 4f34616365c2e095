package handler

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"cdnupload/internal/auth"
	"cdnupload/internal/service"
)

type pingResponse struct {
	OK     bool   `json:"ok"`
	Via    string `json:"via"`
	Method string `json:"method"`
}

type uploadResponse struct {
	OK bool `json:"ok"`
	*service.UploadResult
}

// Ping godoc
// @Summary Upload endpoint liveness
// @Tags upload
// @Produce json
// @Success 200 {object} pingResponse
// @Router /upload [get]
func Ping() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(pingResponse{OK: true, Via: "cdnupload", Method: c.Method()})
	}
}

// UploadFile godoc
// @Summary Upload a file
// @Description Authenticates the bearer token, checks that user_id matches it, stores the file under a fresh key and returns its public URL.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer access token"
// @Param file formData file true "File content"
// @Param user_id formData string true "Owner id, must equal the token's user"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /upload [post]
func UploadFile(verifier auth.Verifier, svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		token, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return writeUploadError(c, errAuthenticationMissing)
		}

		principal, err := verifier.Verify(ctx, token)
		if err != nil || principal == nil || principal.ID == "" {
			return writeUploadError(c, errAuthenticationInvalid)
		}

		form, err := c.MultipartForm()
		if err != nil {
			return writeUnexpected(c, fmt.Errorf("parse multipart form: %w", err))
		}
		fh := formFile(form, "file")
		userID := formValue(form, "user_id")
		if fh == nil || userID == "" {
			return writeUploadError(c, errSubmissionInvalid)
		}

		if userID != principal.ID {
			return writeUploadError(c, errUserMismatch)
		}

		f, err := fh.Open()
		if err != nil {
			return writeUnexpected(c, fmt.Errorf("open uploaded file: %w", err))
		}
		defer f.Close()

		res, err := svc.Upload(ctx, service.UploadInput{
			OwnerID:     principal.ID,
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		})
		if err != nil {
			return writeUnexpected(c, err)
		}

		return c.JSON(uploadResponse{OK: true, UploadResult: res})
	}
}

// formFile returns the first non-empty file part named key.
func formFile(form *multipart.Form, key string) *multipart.FileHeader {
	for _, fh := range form.File[key] {
		if fh != nil && fh.Size > 0 {
			return fh
		}
	}
	return nil
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
