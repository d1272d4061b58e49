// Package cache 工作流结果缓存：按固定键保存/恢复 JSON 记录。
//
// 记录格式没有版本号；格式变化需要换新键或显式迁移。
// 读取时键不存在或 JSON 解析失败都视为"无数据"，不作为错误返回。
package cache

import (
	"encoding/json"
	"fmt"
	"log"

	"materiality/internal/model"
)

// 缓存键
const (
	KeyExcelUpload  = "excelUploadData"
	KeyMediaSearch  = "savedMediaSearch"
	KeyAssessment   = "materialityAssessmentResult"
	KeySurveyData   = "surveyData"
	KeySurveyResult = "surveyResult"
)

// Keys 全部已知键
var Keys = []string{KeyExcelUpload, KeyMediaSearch, KeyAssessment, KeySurveyData, KeySurveyResult}

// Backend 记录存储后端（SQLite Store 与 MemoryStore 均实现）
type Backend interface {
	GetRecord(key string) (string, bool, error)
	PutRecord(key, value string) error
	DeleteRecord(key string) error
	ListRecordKeys() ([]string, error)
}

// ResultCache 类型化缓存
type ResultCache struct {
	backend Backend
}

// New 创建缓存
func New(backend Backend) *ResultCache {
	return &ResultCache{backend: backend}
}

func (c *ResultCache) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.backend.PutRecord(key, string(data))
}

// get 读取并解码；缺失或损坏返回 false
func (c *ResultCache) get(key string, out any) bool {
	raw, ok, err := c.backend.GetRecord(key)
	if err != nil {
		log.Printf("[cache] read %s failed: %v", key, err)
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("[cache] discard unreadable %s: %v", key, err)
		return false
	}
	return true
}

// Has 判断记录是否存在且可解析
func (c *ResultCache) Has(key string) bool {
	var v json.RawMessage
	return c.get(key, &v)
}

// Clear 删除指定键
func (c *ResultCache) Clear(key string) error {
	return c.backend.DeleteRecord(key)
}

// StoredKeys 后端中实际存在的键（含旧版本遗留的未知键）
func (c *ResultCache) StoredKeys() ([]string, error) {
	return c.backend.ListRecordKeys()
}

// ClearAll 删除全部已知键以及后端里遗留的其他键
func (c *ResultCache) ClearAll() error {
	keys := append([]string(nil), Keys...)
	stored, err := c.backend.ListRecordKeys()
	if err != nil {
		return err
	}
	for _, k := range stored {
		if !isKnownKey(k) {
			log.Printf("[cache] removing stale record %s", k)
			keys = append(keys, k)
		}
	}
	for _, k := range keys {
		if err := c.backend.DeleteRecord(k); err != nil {
			return err
		}
	}
	return nil
}

func isKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// SaveUpload 保存名单上传记录
func (c *ResultCache) SaveUpload(rec model.UploadRecord) error {
	if rec.ExcelData == nil {
		rec.ExcelData = []model.UploadedContact{}
	}
	return c.put(KeyExcelUpload, rec)
}

// LoadUpload 恢复名单上传记录
func (c *ResultCache) LoadUpload() (model.UploadRecord, bool) {
	var rec model.UploadRecord
	if !c.get(KeyExcelUpload, &rec) {
		return model.UploadRecord{}, false
	}
	if rec.ExcelData == nil {
		rec.ExcelData = []model.UploadedContact{}
	}
	return rec, true
}

// SaveMediaSearch 保存最近一次检索
func (c *ResultCache) SaveMediaSearch(rec model.MediaSearchRecord) error {
	return c.put(KeyMediaSearch, rec)
}

// LoadMediaSearch 恢复最近一次检索
func (c *ResultCache) LoadMediaSearch() (model.MediaSearchRecord, bool) {
	var rec model.MediaSearchRecord
	ok := c.get(KeyMediaSearch, &rec)
	return rec, ok
}

// SaveAssessment 保存评估结果
func (c *ResultCache) SaveAssessment(rec model.AssessmentRecord) error {
	return c.put(KeyAssessment, rec)
}

// LoadAssessment 恢复评估结果
func (c *ResultCache) LoadAssessment() (model.AssessmentRecord, bool) {
	var rec model.AssessmentRecord
	ok := c.get(KeyAssessment, &rec)
	return rec, ok
}

// SaveSurveyData 保存问卷输入
func (c *ResultCache) SaveSurveyData(data model.SurveyData) error {
	return c.put(KeySurveyData, data)
}

// LoadSurveyData 恢复问卷输入
func (c *ResultCache) LoadSurveyData() (model.SurveyData, bool) {
	var data model.SurveyData
	ok := c.get(KeySurveyData, &data)
	return data, ok
}

// SaveSurveyResult 保存问卷提交结果
func (c *ResultCache) SaveSurveyResult(res model.SurveyResult) error {
	return c.put(KeySurveyResult, res)
}

// LoadSurveyResult 恢复问卷提交结果
func (c *ResultCache) LoadSurveyResult() (model.SurveyResult, bool) {
	var res model.SurveyResult
	ok := c.get(KeySurveyResult, &res)
	return res, ok
}
