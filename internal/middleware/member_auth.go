package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/collab-dashboard-api/internal/constants"
	"github.com/yukikurage/collab-dashboard-api/internal/repository"
)

type pairKey struct {
	userID   uint64
	memberID uint64
}

// pairCache holds the known-valid (userID, memberID) route pairs. It is warmed
// from the members table at startup; a cached pair resolves without touching
// the database, and unknown pairs fall back to an on-demand lookup instead of
// failing outright.
var pairCache = struct {
	mu    sync.RWMutex
	pairs map[pairKey]struct{}
}{pairs: make(map[pairKey]struct{})}

// WarmMemberPairs enumerates every membership row and caches its route pair.
func WarmMemberPairs(memberRepo repository.MemberRepository) error {
	members, err := memberRepo.ListAll()
	if err != nil {
		return err
	}

	pairCache.mu.Lock()
	defer pairCache.mu.Unlock()
	for _, member := range members {
		pairCache.pairs[pairKey{userID: member.UserID, memberID: member.ID}] = struct{}{}
	}
	return nil
}

func knownPair(userID, memberID uint64) bool {
	pairCache.mu.RLock()
	defer pairCache.mu.RUnlock()
	_, ok := pairCache.pairs[pairKey{userID: userID, memberID: memberID}]
	return ok
}

func rememberPair(userID, memberID uint64) {
	pairCache.mu.Lock()
	defer pairCache.mu.Unlock()
	pairCache.pairs[pairKey{userID: userID, memberID: memberID}] = struct{}{}
}

// RequireMemberAccess resolves the (user_id, member_id) route pair. The
// authenticated user must be the user named in the route, and the member must
// belong to them; mismatches read as 404 so membership is not leaked. Warmed
// pairs skip the lookup; the service layer re-reads the member row anyway.
func RequireMemberAccess(memberRepo repository.MemberRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		routeUserID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid user ID",
			})
			c.Abort()
			return
		}

		memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid member ID",
			})
			c.Abort()
			return
		}

		authUserID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if authUserID != routeUserID {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Member not found",
			})
			c.Abort()
			return
		}

		// Pairs created after the warm pass resolve on demand here.
		if !knownPair(routeUserID, memberID) {
			member, err := memberRepo.FindByID(memberID)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Member not found",
				})
				c.Abort()
				return
			}
			if member.UserID != routeUserID {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Member not found",
				})
				c.Abort()
				return
			}
			rememberPair(routeUserID, memberID)
		}

		c.Set(constants.ContextKeyMemberID, memberID)
		c.Next()
	}
}

// GetMemberID retrieves the resolved member ID from context.
func GetMemberID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyMemberID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
