package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/langchou/garagebook/internal/models"
)

// parseID 解析路径中的 ID，失败时直接返回 400
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " ID"})
		return 0, false
	}
	return id, true
}

// bindJSON 解析请求体，失败时直接返回 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// queryParser 按顺序解析查询参数，记录第一个错误
type queryParser struct {
	c   *gin.Context
	err error
}

func (p *queryParser) int64(key string) int64 {
	raw := p.c.Query(key)
	if raw == "" || p.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		p.err = fmt.Errorf("invalid %s %q", key, raw)
		return 0
	}
	return v
}

func (p *queryParser) int(key string) int {
	return int(p.int64(key))
}

func (p *queryParser) date(key string, required bool) *models.Date {
	raw := p.c.Query(key)
	if p.err != nil {
		return nil
	}
	if raw == "" {
		if required {
			p.err = fmt.Errorf("%s is required", key)
		}
		return nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
		return nil
	}
	return &d
}

func (p *queryParser) month(key string) models.Date {
	raw := p.c.Query(key)
	if p.err != nil {
		return models.Date{}
	}
	if raw == "" {
		p.err = fmt.Errorf("%s is required", key)
		return models.Date{}
	}
	m, err := models.ParseMonth(raw)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return m
}

// ok 无错误时返回 true，否则写入 400
func (p *queryParser) ok() bool {
	if p.err != nil {
		p.c.JSON(http.StatusBadRequest, gin.H{"error": p.err.Error()})
		return false
	}
	return true
}
