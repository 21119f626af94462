package routes

import (
	"fmt"
	"time"

	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

type UploadDocumentInput struct {
	Document  string `json:"document" validate:"required"` // base64 payload
	Subfolder string `json:"subfolder" validate:"omitempty,oneof=contracts cheques receipts licenses cases"`
}

// UploadDocument stores a supporting document and returns its hosted URL.
func UploadDocument(ctx iris.Context) {
	var input UploadDocumentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	subfolder := input.Subfolder
	if subfolder == "" {
		subfolder = "contracts"
	}

	publicID := fmt.Sprintf("doc-%d", time.Now().UnixNano())
	upload := storage.UploadBase64Document(input.Document, publicID, subfolder)
	if !upload.Success {
		utils.CreateError(iris.StatusBadGateway, "Upload Failed", "Could not store the document.", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "filePath": upload.FilePath})
}
