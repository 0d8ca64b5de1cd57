package webserver

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/identity"
	"github.com/splenwilz/tryrack-api/src/api/review"
	"github.com/splenwilz/tryrack-api/src/api/types"
)

type Reviews struct {
	db        *gorm.DB
	idc       *identity.Client
	users     *identity.Cache
	sanitizer *bluemonday.Policy
}

func NewReviews(db *gorm.DB, idc *identity.Client, users *identity.Cache) Reviews {
	return Reviews{
		db:        db,
		idc:       idc,
		users:     users,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

type reviewResponse struct {
	types.Review
	User         *identity.User      `json:"user"`
	Verification review.Verification `json:"verification"`
	LikeCount    int64               `json:"like_count"`
	UserHasLiked bool                `json:"user_has_liked"`
}

// lookupUser resolves identity facts through the TTL cache. A failed
// provider lookup is cached as nil so one broken account cannot stall every
// page render; nil maps to "unverified" when classifying.
func (h Reviews) lookupUser(userID string) *identity.User {
	if u, ok := h.users.Get(userID); ok {
		return u
	}
	u, err := h.idc.GetUser(userID)
	if err != nil {
		log.Printf("reviews: identity lookup failed for %s: %v", userID, err)
		u = nil
	}
	h.users.Put(userID, u)
	return u
}

// hasTriedOn reports whether the user ran a virtual try-on of this exact
// catalog item.
func (h Reviews) hasTriedOn(userID string, itemID uint64) bool {
	var n int64
	h.db.Table("try_on_items").
		Joins("JOIN try_on_sessions ON try_on_sessions.id = try_on_items.session_id").
		Where("try_on_sessions.user_id = ? AND try_on_items.catalog_item_id = ?", userID, itemID).
		Count(&n)
	return n > 0
}

// enrich decorates reviews with reviewer identity, trust tier and like
// data. Identity lookups for distinct reviewers go out concurrently and are
// joined before any response is assembled.
func (h Reviews) enrich(reviews []types.Review, currentUserID string) []reviewResponse {
	if len(reviews) == 0 {
		return []reviewResponse{}
	}

	seen := make(map[string]bool)
	var userIDs []string
	reviewIDs := make([]uint64, 0, len(reviews))
	for _, r := range reviews {
		reviewIDs = append(reviewIDs, r.ID)
		if !seen[r.UserID] {
			seen[r.UserID] = true
			userIDs = append(userIDs, r.UserID)
		}
	}

	usersByID := make(map[string]*identity.User, len(userIDs))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range userIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			u := h.lookupUser(id)
			mu.Lock()
			usersByID[id] = u
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	likeCounts := make(map[uint64]int64)
	var counts []struct {
		ReviewID uint64
		N        int64
	}
	h.db.Table("review_likes").Select("review_id, count(*) as n").
		Where("review_id IN ?", reviewIDs).Group("review_id").Scan(&counts)
	for _, row := range counts {
		likeCounts[row.ReviewID] = row.N
	}

	liked := make(map[uint64]bool)
	if currentUserID != "" {
		var likes []types.ReviewLike
		h.db.Where("user_id = ? AND review_id IN ?", currentUserID, reviewIDs).Find(&likes)
		for _, l := range likes {
			liked[l.ReviewID] = true
		}
	}

	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		u := usersByID[r.UserID]

		facts := review.Facts{}
		if u != nil {
			facts.EmailVerified = u.EmailVerified
			facts.HasFirstName = u.FirstName != ""
			facts.HasLastName = u.LastName != ""
		}
		itemType := review.ItemType(r.ItemType)
		if itemType == review.ItemTypeProduct && facts.EmailVerified {
			facts.TriedOnProduct = h.hasTriedOn(r.UserID, r.ItemID)
		}

		out = append(out, reviewResponse{
			Review:       r,
			User:         u,
			Verification: review.Classify(itemType, facts),
			LikeCount:    likeCounts[r.ID],
			UserHasLiked: liked[r.ID],
		})
	}
	return out
}

func (h Reviews) Create(c *gin.Context) {
	var req struct {
		ItemType string   `json:"itemType" binding:"required,oneof=product boutique"`
		ItemID   uint64   `json:"itemId" binding:"required"`
		Rating   int      `json:"rating" binding:"required,min=1,max=5"`
		Comment  string   `json:"comment" binding:"max=5000"`
		Images   []string `json:"images" binding:"max=10,dive,url,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	// The reviewed item must exist.
	var err error
	if req.ItemType == types.ReviewItemProduct {
		err = h.db.First(&types.CatalogItem{}, "id = ?", req.ItemID).Error
	} else {
		err = h.db.First(&types.Boutique{}, "id = ?", req.ItemID).Error
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": req.ItemType + " not found"})
		return
	}

	uid := c.GetString("uid")
	var existing types.Review
	if err := h.db.First(&existing, "item_type = ? AND item_id = ? AND user_id = ?", req.ItemType, req.ItemID, uid).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"err": "you have already reviewed this " + req.ItemType})
		return
	}

	r := types.Review{
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
		UserID:   uid,
		Rating:   req.Rating,
		Comment:  h.sanitizer.Sanitize(req.Comment),
		Images:   strings.Join(req.Images, ","),
	}
	if err := h.db.Create(&r).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	log.Printf("reviews: user %s reviewed %s %d (pending moderation)", uid, r.ItemType, r.ItemID)
	c.JSON(http.StatusCreated, r)
}

// List is the public review feed for an item. Only approved reviews appear.
func (h Reviews) List(c *gin.Context) {
	q := h.db.Where("is_approved = ?", true)
	if it := c.Query("item_type"); it != "" {
		if it != types.ReviewItemProduct && it != types.ReviewItemBoutique {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid item_type"})
			return
		}
		q = q.Where("item_type = ?", it)
	}
	if raw := c.Query("item_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid item_id"})
			return
		}
		q = q.Where("item_id = ?", id)
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	var reviews []types.Review
	if err := q.Order("created_at desc").Offset(skip).Limit(limit).Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": h.enrich(reviews, c.GetString("uid"))})
}

func (h Reviews) ListMine(c *gin.Context) {
	var reviews []types.Review
	if err := h.db.Where("user_id = ?", c.GetString("uid")).Order("created_at desc").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": h.enrich(reviews, c.GetString("uid"))})
}

func (h Reviews) ListPending(c *gin.Context) {
	var reviews []types.Review
	if err := h.db.Where("is_approved = ?", false).Order("created_at asc").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": h.enrich(reviews, c.GetString("uid"))})
}

func (h Reviews) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid review id"})
		return
	}

	var req struct {
		Rating  int      `json:"rating" binding:"required,min=1,max=5"`
		Comment string   `json:"comment" binding:"max=5000"`
		Images  []string `json:"images" binding:"max=10,dive,url,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	uid := c.GetString("uid")
	var r types.Review
	if err := h.db.First(&r, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "review not found"})
		return
	}
	if r.UserID != uid {
		log.Printf("reviews: user %s attempted to update review %d owned by %s", uid, id, r.UserID)
		c.JSON(http.StatusForbidden, gin.H{"err": "not your review"})
		return
	}

	r.Rating = req.Rating
	r.Comment = h.sanitizer.Sanitize(req.Comment)
	r.Images = strings.Join(req.Images, ",")
	// Edits go back through moderation.
	r.IsApproved = false

	if err := h.db.Save(&r).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h Reviews) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid review id"})
		return
	}

	uid := c.GetString("uid")
	var r types.Review
	if err := h.db.First(&r, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "review not found"})
		return
	}
	if r.UserID != uid {
		log.Printf("reviews: user %s attempted to delete review %d owned by %s", uid, id, r.UserID)
		c.JSON(http.StatusForbidden, gin.H{"err": "not your review"})
		return
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&types.ReviewLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&r).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Reviews) Like(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid review id"})
		return
	}

	if err := h.db.First(&types.Review{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "review not found"})
		return
	}

	uid := c.GetString("uid")
	var existing types.ReviewLike
	if err := h.db.First(&existing, "review_id = ? AND user_id = ?", id, uid).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"liked": true})
		return
	}

	if err := h.db.Create(&types.ReviewLike{ReviewID: id, UserID: uid}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"liked": true})
}

func (h Reviews) Unlike(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid review id"})
		return
	}

	res := h.db.Where("review_id = ? AND user_id = ?", id, c.GetString("uid")).Delete(&types.ReviewLike{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": res.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false})
}

func (h Reviews) Approve(c *gin.Context) { h.setApproval(c, true) }
func (h Reviews) Reject(c *gin.Context)  { h.setApproval(c, false) }

func (h Reviews) setApproval(c *gin.Context, approved bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid review id"})
		return
	}

	var r types.Review
	if err := h.db.First(&r, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "review not found"})
		return
	}

	if err := h.db.Model(&r).Update("is_approved", approved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	log.Printf("reviews: admin %s set review %d approved=%v", c.GetString("uid"), id, approved)
	r.IsApproved = approved
	c.JSON(http.StatusOK, r)
}
