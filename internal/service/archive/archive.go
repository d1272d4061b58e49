// Package archive 将上传的原始名单文件与问卷提交结果落盘到数据目录，便于事后核对。
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"materiality/internal/model"
)

// Archive 数据目录下的归档
//
//	<dir>/uploads/<fileId><ext>
//	<dir>/submissions/<submissionId>.json
type Archive struct {
	dir string
}

// New 创建归档（目录按需创建）
func New(dir string) *Archive {
	return &Archive{dir: dir}
}

// Dir 归档根目录
func (a *Archive) Dir() string {
	return a.dir
}

// uploadExtensions 名单上传只接受这两种扩展名
var uploadExtensions = []string{".xlsx", ".xls"}

// validID id 直接用作文件名，不允许路径分隔符
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

func (a *Archive) uploadPath(fileID, fileName string) string {
	return filepath.Join(a.dir, "uploads", fileID+strings.ToLower(filepath.Ext(fileName)))
}

func (a *Archive) submissionPath(submissionID string) string {
	return filepath.Join(a.dir, "submissions", submissionID+".json")
}

// SaveUpload 保存原始上传文件，返回路径
func (a *Archive) SaveUpload(fileID, fileName string, data []byte) (string, error) {
	if fileID == "" {
		return "", fmt.Errorf("archive upload: empty file id")
	}
	path := a.uploadPath(fileID, fileName)
	if err := writeBytesAtomic(path, data); err != nil {
		return "", fmt.Errorf("archive upload %s: %w", fileID, err)
	}
	return path, nil
}

// ReadUpload 按 fileId 读取已归档的上传文件，返回内容与扩展名
func (a *Archive) ReadUpload(fileID string) ([]byte, string, error) {
	if !validID(fileID) {
		return nil, "", os.ErrNotExist
	}
	for _, ext := range uploadExtensions {
		data, err := os.ReadFile(filepath.Join(a.dir, "uploads", fileID+ext))
		if err == nil {
			return data, ext, nil
		}
		if !os.IsNotExist(err) {
			return nil, "", err
		}
	}
	return nil, "", os.ErrNotExist
}

// SaveSubmission 保存问卷提交结果
func (a *Archive) SaveSubmission(res model.SurveyResult) error {
	if res.SubmissionID == "" {
		return fmt.Errorf("archive submission: empty submission id")
	}
	if err := writeJSONAtomic(a.submissionPath(res.SubmissionID), res); err != nil {
		return fmt.Errorf("archive submission %s: %w", res.SubmissionID, err)
	}
	return nil
}

// LoadSubmission 读取提交结果
func (a *Archive) LoadSubmission(submissionID string) (*model.SurveyResult, error) {
	if !validID(submissionID) {
		return nil, os.ErrNotExist
	}
	path := a.submissionPath(submissionID)
	if !fileExists(path) {
		return nil, os.ErrNotExist
	}
	var res model.SurveyResult
	if err := readJSON(path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListSubmissions 已归档的提交 id（升序）
func (a *Archive) ListSubmissions() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(a.dir, "submissions"))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
