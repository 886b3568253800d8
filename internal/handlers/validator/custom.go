package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	api "github.com/made-to-scale/scaleops/api/v1"
)

var projectNameValidRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} +\-_.]*$`)

func nameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	val = strings.TrimSpace(val)
	if val == "" || len(val) > 120 {
		return false
	}
	return projectNameValidRegex.MatchString(val)
}

// scriptTypeValidator accepts the copywriting frameworks the pipeline can
// render. Empty is allowed; image ads carry no script.
func scriptTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch val {
	case "", "AIDA", "PAS", "4Ps", "FAB", "Storytelling":
		return true
	}
	return false
}

// adGenerateValidator enforces the per-format rules: a video ad needs a
// script framework and a duration, a carousel needs a slide count. Image ads
// carry neither.
func adGenerateValidator(sl validator.StructLevel) {
	request, ok := sl.Current().Interface().(api.AdGenerateRequest)
	if !ok {
		return
	}
	switch request.Format {
	case "video":
		if request.ScriptType == "" {
			sl.ReportError(request.ScriptType, "ScriptType", "script_type", "required_for_video", "")
		}
		if request.VideoDurationSeconds <= 0 {
			sl.ReportError(request.VideoDurationSeconds, "VideoDurationSeconds", "video_duration_seconds", "required_for_video", "")
		}
	case "carousel":
		if request.CarouselSlides <= 0 {
			sl.ReportError(request.CarouselSlides, "CarouselSlides", "carousel_slides", "required_for_carousel", "")
		}
	}
}
