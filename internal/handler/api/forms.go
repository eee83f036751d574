// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/service"
)

// maxFormMemory is the multipart size kept in memory; larger parts spill to disk.
const maxFormMemory = 32 << 20

// Form field names.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldContent     = "content"
	fieldWebsite     = "website"
	fieldImage       = "image"
	fieldFile        = "file"
)

// translationForm validates one language triple.
type translationForm struct {
	Title       *string `form:"title" validate:"omitempty,max=255"`
	Description *string `form:"description" validate:"omitempty,max=2000"`
	Content     *string `form:"content" validate:"omitempty,max=200000"`
}

// simpleForm validates award and parent company fields.
type simpleForm struct {
	Title       *string `form:"title" validate:"omitempty,max=255"`
	Description *string `form:"description" validate:"omitempty,max=2000"`
	Website     *string `form:"website" validate:"omitempty,http_url,max=2048"`
}

// aboutForm validates the about text.
type aboutForm struct {
	Content *string `form:"content" validate:"omitempty,max=200000"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
}

// fieldErrors converts validator errors into a field->message map, prefixing
// each field name.
func fieldErrors(err error, prefix string) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{prefix + "form": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[prefix+fe.Field()] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "http_url":
		return "must be a valid http or https URL"
	case "required":
		return "is required"
	default:
		return "is invalid"
	}
}

// parseForm parses a multipart or urlencoded body into r.PostForm.
func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

// formValue returns the submitted value of key, or nil when the field was
// not sent at all.
func formValue(r *http.Request, key string) *string {
	vs, ok := r.PostForm[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}

// trimmedValue is formValue with surrounding whitespace removed.
func trimmedValue(r *http.Request, key string) *string {
	v := formValue(r, key)
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

// translationsFromForm collects the {lang}_title, {lang}_description and
// {lang}_content fields of every supported language that sent any of them.
func translationsFromForm(r *http.Request) model.TranslationSet {
	set := model.TranslationSet{}
	for _, lang := range model.Languages {
		prefix := string(lang) + "_"
		f := model.TranslationFields{
			Title:       trimmedValue(r, prefix+fieldTitle),
			Description: formValue(r, prefix+fieldDescription),
			Content:     formValue(r, prefix+fieldContent),
		}
		if f.Title != nil || f.Description != nil || f.Content != nil {
			set[lang] = f
		}
	}
	return set
}

func (h *Handler) validateTranslations(set model.TranslationSet) map[string]string {
	details := map[string]string{}
	for lang, f := range set {
		err := h.validate.Struct(translationForm{
			Title:       f.Title,
			Description: f.Description,
			Content:     f.Content,
		})
		if err != nil {
			for k, v := range fieldErrors(err, string(lang)+"_") {
				details[k] = v
			}
		}
	}
	return details
}

func simpleInputFromForm(r *http.Request) model.SimpleInput {
	return model.SimpleInput{
		Title:       trimmedValue(r, fieldTitle),
		Description: formValue(r, fieldDescription),
		Website:     trimmedValue(r, fieldWebsite),
	}
}

func (h *Handler) validateSimple(in model.SimpleInput) map[string]string {
	err := h.validate.Struct(simpleForm{
		Title:       in.Title,
		Description: in.Description,
		Website:     in.Website,
	})
	if err != nil {
		return fieldErrors(err, "")
	}
	return nil
}

// formUpload returns the uploaded file in field, or nil when none was sent.
// The returned close function is always safe to call.
func formUpload(r *http.Request, field string) (*service.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, fmt.Errorf("reading %s: %w", field, err)
	}
	return &service.Upload{Reader: file, Filename: header.Filename}, func() { _ = file.Close() }, nil
}
