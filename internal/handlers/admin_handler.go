// File: internal/handlers/admin_handler.go
package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/iyunix/go-newsbot/internal/domain"
	"github.com/iyunix/go-newsbot/internal/services/admin_services"
)

// AdminService is the admin surface the handlers need.
type AdminService interface {
	ListUsers(ctx context.Context, page, limit int, search string) (*admin_services.UserPage, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	SearchesForExport(ctx context.Context, keyword string) ([]domain.Search, error)
}

type AdminHandler struct {
	adminService AdminService
}

func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GetAllUsersHandler handles the API request to fetch users with pagination and search.
func (h *AdminHandler) GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 {
		limit = 20
	}

	result, err := h.adminService.ListUsers(r.Context(), page, limit, query.Get("search"))
	if err != nil {
		log.Printf("[AdminHandler] Error getting users: %v", err)
		writeAppError(w, err, "사용자 목록을 불러오지 못했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) ExportUsersCSVHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.GetAllUsers(r.Context())
	if err != nil {
		log.Printf("[AdminHandler] Error exporting users: %v", err)
		writeAppError(w, err, "사용자 내보내기에 실패했습니다.")
		return
	}

	csvWriter := startCSV(w, "users")
	defer csvWriter.Flush()

	header := []string{"ID", "UserID", "Username", "Email", "Phone", "IsAdmin", "CreatedAt", "LastLogin"}
	if err := csvWriter.Write(header); err != nil {
		log.Printf("[AdminHandler] Error writing CSV header: %v", err)
		return
	}

	for _, user := range users {
		lastLogin := ""
		if user.LastLogin != nil {
			lastLogin = user.LastLogin.Format(time.RFC3339)
		}
		record := []string{
			user.ID,
			user.UserID,
			user.Username,
			user.Email,
			user.Phone,
			strconv.FormatBool(user.IsAdmin),
			user.CreatedAt.Format(time.RFC3339),
			lastLogin,
		}
		if err := csvWriter.Write(record); err != nil {
			log.Printf("[AdminHandler] Error writing CSV record for user %s: %v", user.ID, err)
			return
		}
	}
	log.Printf("[AdminHandler] Successfully exported %d users to CSV.", len(users))
}

// ExportSearchesCSVHandler writes one row per stored news item, joined with
// its search and summary.
func (h *AdminHandler) ExportSearchesCSVHandler(w http.ResponseWriter, r *http.Request) {
	searches, err := h.adminService.SearchesForExport(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		log.Printf("[AdminHandler] Error exporting searches: %v", err)
		writeAppError(w, err, "검색 기록 내보내기에 실패했습니다.")
		return
	}

	csvWriter := startCSV(w, "searches")
	defer csvWriter.Flush()

	header := []string{"SearchID", "Keyword", "CreatedAt", "UserName", "Summary", "Title", "Source", "PublishedAt", "Link"}
	if err := csvWriter.Write(header); err != nil {
		log.Printf("[AdminHandler] Error writing CSV header: %v", err)
		return
	}

	rows := 0
	for _, s := range searches {
		summary := ""
		if len(s.Summaries) > 0 {
			summary = s.Summaries[0].SummaryText
		}
		userName := ""
		if s.UserName != nil {
			userName = *s.UserName
		}
		base := []string{s.ID, s.Keyword, s.CreatedAt.Format(time.RFC3339), userName, summary}

		if len(s.NewsItems) == 0 {
			if err := csvWriter.Write(append(base, "", "", "", "")); err != nil {
				log.Printf("[AdminHandler] Error writing CSV record for search %s: %v", s.ID, err)
				return
			}
			rows++
			continue
		}
		for _, item := range s.NewsItems {
			record := append(append([]string{}, base...), item.Title, item.Source, item.PublishedAt, item.Link)
			if err := csvWriter.Write(record); err != nil {
				log.Printf("[AdminHandler] Error writing CSV record for search %s: %v", s.ID, err)
				return
			}
			rows++
		}
	}
	log.Printf("[AdminHandler] Successfully exported %d search rows to CSV.", rows)
}

func startCSV(w http.ResponseWriter, name string) *csv.Writer {
	filename := fmt.Sprintf("%s_export_%s.csv", name, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	// UTF-8 BOM so spreadsheet apps read Hangul correctly.
	w.Write([]byte{0xEF, 0xBB, 0xBF})
	return csv.NewWriter(w)
}
