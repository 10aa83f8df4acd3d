package order

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"lablink/models"
	"lablink/utils"
)

const attachmentFolder = "case-attachments"

// AddAttachment validates a case file and uploads it. Dental scan files get a
// header sanity check before they are sent to storage; photos are passed
// through as-is.
func (s *DefaultOrderService) AddAttachment(ctx context.Context, orderID, localFilePath, fileName, kind string) (*models.Attachment, error) {
	if _, err := s.OrderRepo.GetByID(orderID); err != nil {
		return nil, err
	}

	switch kind {
	case "model":
		data, err := os.ReadFile(localFilePath)
		if err != nil {
			return nil, fmt.Errorf("reading uploaded file: %w", err)
		}
		if err := utils.ValidateModelFile(fileName, data); err != nil {
			return nil, err
		}
	case "photo":
	default:
		return nil, fmt.Errorf("unknown attachment kind %q (expected photo or model)", kind)
	}

	publicID, err := s.Storage.UploadFile(ctx, localFilePath, attachmentFolder+"/"+orderID)
	if err != nil {
		return nil, fmt.Errorf("uploading attachment: %w", err)
	}

	att := models.Attachment{
		PublicID:   publicID,
		FileName:   strings.TrimSpace(fileName),
		Kind:       kind,
		UploadedAt: time.Now(),
	}
	if err := s.OrderRepo.AddAttachment(orderID, att); err != nil {
		return nil, err
	}
	return &att, nil
}
