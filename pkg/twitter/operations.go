package twitter

import (
	"net/http"
	"strings"
)

// operation describes one GraphQL operation.
type operation struct {
	name   string
	method string

	// defaults are the lowest-precedence variables
	defaults map[string]any

	// rename maps caller parameter names to variable names
	rename map[string]string

	// prepare adjusts the final variables
	prepare func(vars map[string]any)

	extract func(op string, doc any) (any, error)
}

// variables merges defaults, flag-supplied variables and caller params,
// in increasing precedence.
func (op *operation) variables(fromFlags, params map[string]any) map[string]any {
	vars := make(map[string]any, len(op.defaults)+len(fromFlags)+len(params))
	for k, v := range op.defaults {
		vars[k] = v
	}
	for k, v := range fromFlags {
		vars[k] = v
	}
	for k, v := range params {
		if mapped, ok := op.rename[k]; ok {
			k = mapped
		}
		vars[k] = v
	}
	if op.prepare != nil {
		op.prepare(vars)
	}
	return vars
}

var timelineDefaults = map[string]any{
	"count":                  20,
	"includePromotedContent": false,
}

func path(p string) []string { return strings.Split(p, ".") }

var (
	opUserByScreenName = &operation{
		name:     "UserByScreenName",
		method:   http.MethodGet,
		defaults: map[string]any{"withSafetyModeUserFields": true},
		rename:   map[string]string{"screenName": "screen_name"},
		extract:  single(path("data.user.result")),
	}
	opUserByRestID = &operation{
		name:     "UserByRestId",
		method:   http.MethodGet,
		defaults: map[string]any{"withSafetyModeUserFields": true},
		extract:  single(path("data.user.result")),
	}
	opUsersByRestIDs = &operation{
		name:    "UsersByRestIds",
		method:  http.MethodGet,
		extract: resultList(path("data.users")),
	}

	opTweetDetail = &operation{
		name:   "TweetDetail",
		method: http.MethodGet,
		defaults: map[string]any{
			"with_rux_injections":    false,
			"includePromotedContent": false,
			"withVoice":              true,
		},
		rename:  map[string]string{"tweetId": "focalTweetId"},
		extract: timeline(path("data.threaded_conversation_with_injections_v2.instructions")),
	}
	opUserTweets = &operation{
		name:     "UserTweets",
		method:   http.MethodGet,
		defaults: timelineDefaults,
		extract:  timeline(userTimelinePaths...),
	}
	opUserTweetsAndReplies = &operation{
		name:     "UserTweetsAndReplies",
		method:   http.MethodGet,
		defaults: timelineDefaults,
		extract:  timeline(userTimelinePaths...),
	}
	opUserMedia = &operation{
		name:     "UserMedia",
		method:   http.MethodGet,
		defaults: timelineDefaults,
		extract:  timeline(userTimelinePaths...),
	}
	opLikes = &operation{
		name:     "Likes",
		method:   http.MethodGet,
		defaults: timelineDefaults,
		extract:  timeline(userTimelinePaths...),
	}
	opHomeTimeline = &operation{
		name:     "HomeTimeline",
		method:   http.MethodPost,
		defaults: timelineDefaults,
		extract:  timeline(path("data.home.home_timeline_urt.instructions")),
	}
	opHomeLatestTimeline = &operation{
		name:     "HomeLatestTimeline",
		method:   http.MethodPost,
		defaults: timelineDefaults,
		extract:  timeline(path("data.home.home_timeline_urt.instructions")),
	}
	opSearchTimeline = &operation{
		name:     "SearchTimeline",
		method:   http.MethodGet,
		defaults: map[string]any{"count": 20, "querySource": "typed_query", "product": "Top"},
		rename:   map[string]string{"query": "rawQuery"},
		extract:  timeline(path("data.search_by_raw_query.search_timeline.timeline.instructions")),
	}
	opBookmarks = &operation{
		name:     "Bookmarks",
		method:   http.MethodGet,
		defaults: map[string]any{"count": 20, "includePromotedContent": false},
		extract:  timeline(path("data.bookmark_timeline_v2.timeline.instructions")),
	}
	opListLatestTweetsTimeline = &operation{
		name:     "ListLatestTweetsTimeline",
		method:   http.MethodGet,
		defaults: map[string]any{"count": 20},
		extract:  timeline(path("data.list.tweets_timeline.timeline.instructions")),
	}

	opFollowers = &operation{
		name:     "Followers",
		method:   http.MethodGet,
		defaults: timelineDefaults,
		extract:  timeline(userTimelinePaths...),
	}
	opFollowing = &operation{
		name:     "Following",
		method:   http.MethodGet,
		defaults: timelineDefaults,
		extract:  timeline(userTimelinePaths...),
	}
	opFavoriters = &operation{
		name:     "Favoriters",
		method:   http.MethodGet,
		defaults: timelineDefaults,
		extract:  timeline(path("data.favoriters_timeline.timeline.instructions")),
	}
	opRetweeters = &operation{
		name:     "Retweeters",
		method:   http.MethodGet,
		defaults: timelineDefaults,
		extract:  timeline(path("data.retweeters_timeline.timeline.instructions")),
	}

	opCreateTweet = &operation{
		name:   "CreateTweet",
		method: http.MethodPost,
		defaults: map[string]any{
			"dark_request":            false,
			"media":                   map[string]any{"media_entities": []any{}, "possibly_sensitive": false},
			"semantic_annotation_ids": []any{},
		},
		rename: map[string]string{
			"tweetText": "tweet_text",
			"text":      "tweet_text",
		},
		prepare: func(vars map[string]any) {
			if id, ok := vars["inReplyToTweetId"]; ok {
				delete(vars, "inReplyToTweetId")
				vars["reply"] = map[string]any{
					"in_reply_to_tweet_id":   id,
					"exclude_reply_user_ids": []any{},
				}
			}
			if u, ok := vars["attachmentUrl"]; ok {
				delete(vars, "attachmentUrl")
				vars["attachment_url"] = u
			}
		},
		extract: single(path("data.create_tweet.tweet_results.result")),
	}
	opDeleteTweet = &operation{
		name:     "DeleteTweet",
		method:   http.MethodPost,
		defaults: map[string]any{"dark_request": false},
		rename:   map[string]string{"tweetId": "tweet_id"},
		extract:  value(path("data.delete_tweet")),
	}
	opCreateRetweet = &operation{
		name:     "CreateRetweet",
		method:   http.MethodPost,
		defaults: map[string]any{"dark_request": false},
		rename:   map[string]string{"tweetId": "tweet_id"},
		extract:  value(path("data.create_retweet.retweet_results.result")),
	}
	opDeleteRetweet = &operation{
		name:     "DeleteRetweet",
		method:   http.MethodPost,
		defaults: map[string]any{"dark_request": false},
		rename:   map[string]string{"tweetId": "source_tweet_id"},
		extract:  value(path("data.unretweet.source_tweet_results.result")),
	}
	opFavoriteTweet = &operation{
		name:    "FavoriteTweet",
		method:  http.MethodPost,
		rename:  map[string]string{"tweetId": "tweet_id"},
		extract: value(path("data.favorite_tweet")),
	}
	opUnfavoriteTweet = &operation{
		name:    "UnfavoriteTweet",
		method:  http.MethodPost,
		rename:  map[string]string{"tweetId": "tweet_id"},
		extract: value(path("data.unfavorite_tweet")),
	}
)

// userTimelinePaths covers both layouts the platform serves for
// per-user timelines.
var userTimelinePaths = [][]string{
	path("data.user.result.timeline_v2.timeline.instructions"),
	path("data.user.result.timeline.timeline.instructions"),
}

// friendshipRename maps caller parameters for the v1.1 friendship calls.
var friendshipRename = map[string]string{
	"userId":     "user_id",
	"screenName": "screen_name",
}
