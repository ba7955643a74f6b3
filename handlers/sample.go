package handlers

import (
	"net/http"

	"github.com/dmitrymomot/authgate"
	"github.com/dmitrymomot/authgate/pkg/sample"
	"github.com/dmitrymomot/authgate/pkg/sanitizer"
)

// SampleController exposes sample.Manager at /api/sample/{id}.
type SampleController struct {
	manager *sample.Manager
}

// NewSampleController creates the controller over m.
func NewSampleController(m *sample.Manager) *SampleController {
	return &SampleController{manager: m}
}

func (sc *SampleController) Name() string { return "sample" }

func (sc *SampleController) Get(c authgate.Context, id string) error {
	s, err := sc.manager.Get(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (sc *SampleController) Post(c authgate.Context, _ string) error {
	in, err := bindSample(c)
	if err != nil {
		return err
	}
	s, err := sc.manager.Post(c, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

func (sc *SampleController) Put(c authgate.Context, id string) error {
	if id == "" {
		return authgate.ErrBadRequest("id is required")
	}
	in, err := bindSample(c)
	if err != nil {
		return err
	}
	s, err := sc.manager.Put(c, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (sc *SampleController) Delete(c authgate.Context, id string) error {
	if id == "" {
		return authgate.ErrBadRequest("id is required")
	}
	if err := sc.manager.Delete(c, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// bindSample decodes the body when there is one. Names are reduced to plain
// single-line text.
func bindSample(c authgate.Context) (sample.Sample, error) {
	var s sample.Sample
	if c.Request().ContentLength == 0 {
		return s, nil
	}
	if err := c.BindJSON(&s); err != nil {
		return sample.Sample{}, err
	}
	s.Name = sanitizer.Name(s.Name)
	return s, nil
}

var (
	_ authgate.Controller = (*SampleController)(nil)
	_ authgate.Getter     = (*SampleController)(nil)
	_ authgate.Poster     = (*SampleController)(nil)
	_ authgate.Putter     = (*SampleController)(nil)
	_ authgate.Deleter    = (*SampleController)(nil)
)
