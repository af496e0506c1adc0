package facebook

// knownFiles are the file names of an English JSON export.
var knownFiles = []string{
	"events_interactions.json",
	"group_interactions.json",
	"people_and_friends.json",
	"advertisers_using_your_activity_or_information.json",
	"advertisers_you've_interacted_with.json",
	"apps_and_websites.json",
	"your_off-facebook_activity.json",
	"comments.json",
	"posts_and_comments.json",
	"event_invitations.json",
	"your_event_responses.json",
	"accounts_center.json",
	"marketplace_notifications.json",
	"payment_history.json",
	"controls.json",
	"reduce.json",
	"friend_requests_received.json",
	"friend_requests_sent.json",
	"friends.json",
	"rejected_friend_requests.json",
	"removed_friends.json",
	"who_you_follow.json",
	"your_comments_in_groups.json",
	"your_group_membership_activity.json",
	"your_posts_in_groups.json",
	"primary_location.json",
	"primary_public_location.json",
	"timezone.json",
	"notifications.json",
	"pokes.json",
	"ads_interests.json",
	"friend_peer_group.json",
	"pages_and_profiles_you_follow.json",
	"pages_and_profiles_you've_recommended.json",
	"pages_and_profiles_you've_unfollowed.json",
	"pages_you've_liked.json",
	"polls_you_voted_on.json",
	"your_uncategorized_photos.json",
	"your_videos.json",
	"language_and_locale.json",
	"live_video_subscriptions.json",
	"profile_information.json",
	"profile_update_history.json",
	"your_local_lists.json",
	"your_saved_items.json",
	"your_search_history.json",
	"account_activity.json",
	"authorized_logins.json",
	"browser_cookies.json",
	"email_address_verifications.json",
	"ip_address_activity.json",
	"login_protection_data.json",
	"logins_and_logouts.json",
	"mobile_devices.json",
	"record_details.json",
	"where_you're_logged_in.json",
	"your_facebook_activity_history.json",
	"archived_stories.json",
	"location.json",
	"recently_viewed.json",
	"recently_visited.json",
	"your_topics.json",
}
