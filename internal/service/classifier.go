package service

import (
	"sync"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// ClassifierHolder publishes the current status classifier to readers
// while the watcher swaps it on mapping reloads.
type ClassifierHolder struct {
	mu sync.RWMutex
	c  *domain.Classifier
}

// NewClassifierHolder wraps an initial classifier.
func NewClassifierHolder(c *domain.Classifier) *ClassifierHolder {
	return &ClassifierHolder{c: c}
}

// Set replaces the published classifier.
func (h *ClassifierHolder) Set(c *domain.Classifier) {
	h.mu.Lock()
	h.c = c
	h.mu.Unlock()
}

// Current returns the classifier in effect.
func (h *ClassifierHolder) Current() *domain.Classifier {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.c
}
