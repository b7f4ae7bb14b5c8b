package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/fusex/medevac-api/workflow"
)

const filesField = "files"

// receiveFiles saves the uploaded "files" parts into the temporary upload
// directory. A body that is not multipart carries no files.
func receiveFiles(c *gin.Context) ([]workflow.Attachment, error) {
	form, err := c.MultipartForm()
	if err == http.ErrNotMultipart {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dir := viper.GetString("files.tmpdir")
	if dir == "" {
		dir = os.TempDir()
	}

	attachments := make([]workflow.Attachment, 0, len(form.File[filesField]))
	for _, fh := range form.File[filesField] {
		tmp := filepath.Join(dir, "upload-"+uuid.New().String())
		if err := c.SaveUploadedFile(fh, tmp); err != nil {
			discard(attachments)
			return nil, err
		}
		attachments = append(attachments, workflow.Attachment{
			TempPath: tmp,
			Name:     filepath.Base(fh.Filename),
		})
	}
	return attachments, nil
}

// discard removes uploads that will not be placed.
func discard(attachments []workflow.Attachment) {
	for _, a := range attachments {
		if err := os.Remove(a.TempPath); err != nil && !os.IsNotExist(err) {
			log.WithError(err).WithField("file", a.TempPath).Warn("remove upload")
		}
	}
}

type ticketCostParam struct {
	ResponseID uuid.UUID `json:"response_id"`
	Cost       int64     `json:"cost"`
}

// decisionParams is the payload of every status change. Multipart bodies
// send ticket costs as a JSON encoded field.
type decisionParams struct {
	Favorable                 bool              `form:"favorable" json:"favorable"`
	Observation               string            `form:"observation" json:"observation"`
	CancelUnfinishedResponses bool              `form:"cancel_unfinished_responses" json:"cancel_unfinished_responses"`
	TicketCosts               []ticketCostParam `form:"-" json:"ticket_costs"`
	TicketCostsField          string            `form:"ticket_costs" json:"-"`
}

func bindDecision(c *gin.Context) (*decisionParams, error) {
	var params decisionParams
	if err := c.ShouldBind(&params); err != nil {
		return nil, err
	}

	if params.TicketCostsField != "" {
		if err := json.Unmarshal([]byte(params.TicketCostsField), &params.TicketCosts); err != nil {
			return nil, err
		}
	}
	return &params, nil
}

func (p *decisionParams) ticketCosts() []workflow.TicketCost {
	costs := make([]workflow.TicketCost, 0, len(p.TicketCosts))
	for _, tc := range p.TicketCosts {
		costs = append(costs, workflow.TicketCost{
			ResponseID: tc.ResponseID,
			Cost:       tc.Cost,
		})
	}
	return costs
}
