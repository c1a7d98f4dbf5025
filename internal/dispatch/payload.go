package dispatch

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/placepulse/notifier/internal/models"
)

const avatarURLTemplate = "https://ui-avatars.com/api/?name=%s&size=128"

// AvatarURL returns the sender's avatar, or a generated initials-avatar URL
// when none is set. The initial is the uppercased first character of the
// display name, "U" when the name is empty too.
func AvatarURL(name, avatar string) string {
	if avatar != "" {
		return avatar
	}
	initial := "U"
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		initial = strings.ToUpper(string([]rune(trimmed)[0]))
	}
	return fmt.Sprintf(avatarURLTemplate, url.QueryEscape(initial))
}

// StringifyData coerces every value to a string for the push transport:
// booleans as "true"/"false", numbers as decimal strings, nil as "",
// everything else JSON-encoded.
func StringifyData(in map[string]interface{}) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = stringify(v)
	}
	return out
}

func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// payloadData flattens an intent into the string-keyed push payload. All
// canonical target ids ride along, empty or not, so clients see a stable
// shape.
func payloadData(intent models.NotificationIntent) map[string]string {
	data := map[string]interface{}{
		"type":         intent.Category,
		"targetId":     intent.Target.TargetID,
		"targetType":   intent.Target.TargetType,
		"postId":       intent.Target.PostID,
		"placeId":      intent.Target.PlaceID,
		"reviewId":     intent.Target.ReviewID,
		"commentId":    intent.Target.CommentID,
		"senderId":     intent.Sender.ID,
		"senderName":   intent.Sender.Name,
		"senderAvatar": intent.Sender.AvatarURL,
	}
	for k, v := range intent.Extra {
		if _, taken := data[k]; !taken {
			data[k] = v
		}
	}
	return StringifyData(data)
}
