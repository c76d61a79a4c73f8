package rules

// Built-in tables. Outcomes are listed in precedence order; English and
// Vietnamese patterns of one outcome share its rank. Vietnamese patterns are
// written with diacritics and folded at compile time, so each one must stay
// unambiguous once accents are gone (gấp/gặp, hoãn/hoàn and ngay/ngày all
// fold to the same letters).

const (
	weekday   = `(?:mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)(?:day|nesday|rsday|urday)?`
	askEN     = `(?:please|pls|kindly|could\s+you|can\s+you|would\s+you|will\s+you)`
	askVI     = `(?:vui\s+lòng|xin|làm\s+ơn|nhờ|bạn|anh|chị|em)`
	docNounEN = `(?:docs?|documents?|documentation|files?|paperwork|contracts?|reports?|forms?|cop(?:y|ies)|statements?|invoices?|attachments?|pdfs?|spreadsheets?|slides?)`
	docNounVI = `(?:tài\s+liệu|hồ\s+sơ|file|tệp|giấy\s+tờ|báo\s+cáo|hợp\s+đồng)`
)

var schedulingTable = []outcome{
	{
		value: ScheduleConfirmed,
		en: patterns{match: []string{
			`\bconfirm(?:ed|ing)?\s+(?:for|on|at)\b`,
			`\b(?:meeting|call|appointment|time|slot|booking|closing)\s+(?:is\s+|has\s+been\s+)?confirmed\b`,
			`\bsee\s+you\s+(?:then|there|on|at|tomorrow|today|next\s+week|` + weekday + `)\b`,
			`\b(?:that|this|the\s+proposed)\s+time\s+works\b`,
			`\bbooked\s+(?:for|on|at|in)\b`,
			`\b(?:calendar\s+)?invite\s+(?:sent|accepted)\b`,
		}},
		vi: patterns{match: []string{
			`xác\s+nhận\s+(?:lịch|cuộc\s+họp|buổi|giờ|thời\s+gian)`,
			`chốt\s+(?:lịch|giờ|thời\s+gian|ngày)`,
			`hẹn\s+gặp\s+(?:lại\s+)?(?:bạn|anh|chị|em|mọi\s+người|vào|lúc)`,
		}},
	},
	{
		value: ScheduleReschedule,
		en: patterns{match: []string{
			`\bre-?schedul(?:e|ed|ing)\b`,
			`\bpostpon(?:e|ed|ing)\b`,
			`\b(?:move|moving|moved|push|pushing|pushed|shift|shifting|shifted)\s+(?:the\s+|our\s+)?(?:meeting|call|appointment|closing|it|this)\s+(?:to|back|out)\b`,
			`\b(?:a\s+)?(?:different|another|new)\s+(?:time|day|date)\b`,
		}},
		vi: patterns{match: []string{
			`đổi\s+(?:lịch|giờ|ngày)`,
			`dời\s+(?:lịch|giờ|ngày|cuộc\s+họp)`,
			`lùi\s+(?:lịch|giờ|ngày|cuộc\s+họp)`,
			`hoãn\s+(?:lại\s+)?(?:cuộc\s+họp|buổi|lịch|sang|tới)`,
			`tạm\s+hoãn`,
			`chuyển\s+(?:lịch|sang\s+(?:ngày|giờ|thứ|tuần))`,
		}},
	},
	{
		value: ScheduleProposed,
		en: patterns{match: []string{
			`\bhow\s+about\s+(?:` + weekday + `|next|tomorrow|this|\d)`,
			`\b(?:are\s+you|would\s+you\s+be|is\s+everyone)\s+(?:free|available)\b`,
			`\b` + weekday + `\s+(?:at|@)\s*\d`,
			`\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`,
			`\b\d{1,2}[:h]\d{2}\b`,
			`\b(?:let'?s|can\s+we|could\s+we|shall\s+we)\s+(?:meet|schedule|set\s+up|have\s+a\s+call|hop\s+on|close|talk)\b`,
			`\b(?:schedule|set\s+up|arrange|book)\s+(?:a\s+|the\s+)?(?:meeting|call|time|slot)\b`,
			`\b(?:zoom|teams|google\s+meet|hangouts?)\s+(?:call|meeting|link)\b`,
		}},
		vi: patterns{match: []string{
			`\bthứ\s*[2-7]\b`,
			`\bchủ\s+nhật\b`,
			`\b\d{1,2}\s*giờ\b`,
			`(?:đặt|lên|sắp\s+xếp)\s+lịch`,
			`cuộc\s+họp`,
			`họp\s+(?:vào|lúc|ngày|sáng|chiều|tối)`,
			`(?:bạn|anh|chị|em)\s+(?:có\s+)?rảnh\s+(?:không|lúc|vào)`,
		}},
	},
}

var requestTypeTable = []outcome{
	{
		value: RequestEdit,
		en: patterns{match: []string{
			`\b` + askEN + `\s+(?:\w+\s+){0,2}(?:edit|revise|correct|amend|rewrite|redline|mark\s+up)\b`,
			`\b(?:needs?|requires?)\s+(?:some\s+|a\s+few\s+|more\s+)?(?:edits|revisions|changes|corrections|rework)\b`,
			`\b(?:make|send)\s+(?:the\s+|your\s+)?(?:edits|revisions|corrections)\b`,
		}},
		vi: patterns{match: []string{
			`chỉnh\s+sửa`,
			`sửa\s+lại`,
			`cần\s+sửa`,
			`hiệu\s+chỉnh`,
		}},
	},
	{
		value: RequestDocs,
		en: patterns{match: []string{
			`\b` + askEN + `\s+(?:\w+\s+){0,2}(?:send|provide|share|forward|resend|upload)\s+(?:me\s+|us\s+)?(?:over\s+)?(?:the\s+|your\s+|a\s+|any\s+)?(?:\w+\s+)?` + docNounEN + `\b`,
			`\b(?:need|waiting\s+for|still\s+missing|missing)\s+(?:the\s+|your\s+)?(?:\w+\s+)?` + docNounEN + `\b`,
		}},
		vi: patterns{match: []string{
			askVI + `\s+(?:\S+\s+){0,2}(?:gửi|cung\s+cấp|chia\s+sẻ|chuyển)\s+(?:\S+\s+){0,2}` + docNounVI,
			`(?:cần|thiếu|chờ)\s+(?:\S+\s+)?` + docNounVI,
		}},
	},
	{
		value: RequestReview,
		en: patterns{match: []string{
			`\b` + askEN + `\s+(?:\w+\s+){0,2}(?:review|approve|sign\s+off|take\s+a\s+look|look\s+over|check)\b`,
			`\b(?:for|awaiting|needs?|requires?|pending)\s+(?:your\s+)?(?:review|approval|sign-?off|signature)\b`,
			`\blet\s+me\s+know\s+if\s+(?:this|it|these)\s+(?:is|are|looks?)\s+(?:ok|okay|good|fine|acceptable)\b`,
		}},
		vi: patterns{match: []string{
			askVI + `\s+(?:\S+\s+){0,2}(?:duyệt|phê\s+duyệt|xem\s+xét|kiểm\s+tra|xem\s+qua|xác\s+nhận\s+giúp)`,
			`(?:chờ|cần|để)\s+(?:\S+\s+)?(?:duyệt|phê\s+duyệt)`,
		}},
	},
	{
		value: RequestSchedule,
		en: patterns{match: []string{
			`\b(?:meet|meeting|schedule|appointment|conference\s+call)\b`,
			`\b(?:call|talk)\s+(?:me|you|us|tomorrow|today|later|this|next)\b`,
		}},
		vi: patterns{match: []string{
			`(?:buổi|lịch|phòng|cuộc|đi)\s+họp\b`,
			`\bhọp\s+(?:nhóm|mặt|online|trực\s+tuyến|giao\s+ban)`,
			`gặp\s+mặt`,
			`lịch\s+hẹn`,
			`gọi\s+điện`,
		}},
	},
}

var attachmentTable = []outcome{
	{
		value: AttachmentAttached,
		en: patterns{match: []string{
			`\b(?:attached|attaching|enclosed|pfa)\b`,
			`\b(?:see|in)\s+(?:the\s+)?attachment\b`,
			`\b(?:i'?ve|i\s+have|we'?ve|we\s+have)\s+(?:just\s+)?(?:attached|enclosed|uploaded|included)\b`,
			`\b(?:forwarded|forwarding)\s+(?:you\s+)?(?:the\s+|our\s+|all\s+)?(?:\w+\s+)?` + docNounEN + `\b`,
		}},
		vi: patterns{match: []string{
			`đính\s+kèm`,
			`gửi\s+kèm`,
			`kèm\s+theo`,
			`đã\s+(?:gửi|chuyển\s+tiếp)\s+(?:\S+\s+){0,2}` + docNounVI,
		}},
	},
	{
		value: AttachmentExpecting,
		en: patterns{match: []string{
			`\b(?:send|resend|provide|share|forward|upload)\s+(?:me\s+|us\s+|it\s+)?(?:over\s+)?(?:the\s+|a\s+|your\s+)?(?:\w+\s+)?(?:files?|docs?|documents?|attachments?|link|copy|pdf|spreadsheet)\b`,
			`\b(?:will|i'?ll|we'?ll|going\s+to)\s+(?:send|forward|share|attach)\b`,
			`\b(?:to\s+follow|in\s+a\s+separate\s+email)\b`,
		}},
		vi: patterns{match: []string{
			`(?:vui\s+lòng|xin|nhờ)\s+(?:gửi|trả\s+lời|chia\s+sẻ)\s+(?:\S+\s+){0,2}(?:file|tài\s+liệu|đính\s+kèm|tệp)`,
			`sẽ\s+gửi`,
			`gửi\s+sau`,
			`chờ\s+file`,
		}},
	},
}

var urgencyTable = []outcome{
	{
		value: UrgencyUrgent,
		en: patterns{
			match: []string{
				`\b(?:urgent(?:ly)?|asap|immediately|right\s+away|time[-\s]sensitive|critical)\b`,
				`\ba\.s\.a\.p\b`,
				`\b(?:by\s+)?eod\b`,
				`\bend\s+of\s+(?:the\s+)?day\b`,
				`\b(?:by|before)\s+tomorrow\b`,
				`\b(?:today|tonight|this\s+(?:morning|afternoon|evening))\b`,
				`\bwithin\s+(?:the\s+|an\s+|one\s+)?(?:hour|24\s*h(?:ours?|rs?)?)\b`,
			},
			except: []string{
				`(?:\bnot|n't|\bno(?:thing)?)\s+(?:\w+\s+)?(?:urgent|critical|asap)\b`,
			},
		},
		vi: patterns{
			match: []string{
				`khẩn\s+(?:cấp|trương)`,
				`(?:rất|việc|cần)\s+khẩn`,
				`hỏa\s+tốc`,
				`gấp\s+rút`,
				`rất\s+gấp`,
				`ngay\s+lập\s+tức`,
				`trong\s+(?:ngày\s+)?hôm\s+nay`,
				`trong\s+ngày\b`,
				`cuối\s+ngày`,
				`sớm\s+nhất`,
			},
			except: []string{
				`không\s+(?:\S+\s+)?(?:khẩn|gấp)`,
			},
		},
	},
	{
		value: UrgencyStandard,
		en: patterns{match: []string{
			`\bwithin\s+(?:48\s*h(?:ours?|rs?)?|two\s+days|2\s+days|a\s+couple\s+(?:of\s+)?days)\b`,
			`\b(?:by|in)\s+(?:the\s+)?day\s+after\s+tomorrow\b`,
			`\bin\s+(?:two|2)\s+days\b`,
		}},
		vi: patterns{match: []string{
			`trong\s+(?:2|hai)\s+ngày`,
			`ngày\s+kia`,
		}},
	},
	{
		value: UrgencyLow,
		en: patterns{match: []string{
			`\b(?:no\s+rush|no\s+hurry|not\s+urgent|whenever)\b`,
			`\bwhen\s+(?:you'?re\s+|you\s+are\s+)?free\b`,
			`\bwhen\s+you\s+(?:get|have)\s+a\s+(?:chance|moment|minute)\b`,
			`\bat\s+your\s+(?:convenience|leisure)\b`,
			`\b(?:next|within\s+(?:a|one|the))\s+week\b`,
			`\bwithin\s+(?:[3-9]|three|four|five|six|seven)\s+(?:business\s+|working\s+)?days\b`,
			`\bby\s+(?:the\s+)?end\s+of\s+(?:the\s+|this\s+|next\s+)?(?:week|month)\b`,
		}},
		vi: patterns{match: []string{
			`không\s+(?:vội|cần\s+gấp|khẩn\s+cấp)`,
			`(?:lúc|khi)\s+(?:nào\s+)?rảnh`,
			`tuần\s+(?:sau|tới)`,
			`trong\s+(?:tuần|vài\s+ngày)`,
			`thong\s+thả`,
		}},
	},
}

var toneTable = []outcome{
	{
		value: TonePositive,
		en: patterns{match: []string{
			`\b(?:thanks|thank\s+you|thx|appreciated?|much\s+appreciated|cheers)\b`,
			`\b(?:great|awesome|excellent|wonderful|perfect|fantastic)\b`,
			`\b(?:glad|happy)\s+to\b`,
			`\bcongrat(?:s|ulations)\b`,
		}},
		vi: patterns{match: []string{
			`cảm\s+ơn`,
			`cám\s+ơn`,
			`tuyệt\s+vời`,
			`rất\s+tốt`,
			`trân\s+trọng`,
			`hoan\s+nghênh`,
			`vui\s+mừng`,
		}},
	},
	{
		value: ToneNeutral,
		en: patterns{match: []string{
			`\b(?:fyi|noted|acknowledged)\b`,
			`\bfor\s+your\s+(?:information|reference|records)\b`,
		}},
		vi: patterns{match: []string{
			`để\s+(?:anh|chị|bạn|em|mọi\s+người)?\s*biết`,
			`ghi\s+nhận`,
			`đã\s+nhận\s+được`,
		}},
	},
	{
		value: ToneFrustrated,
		en: patterns{match: []string{
			`\b(?:frustrat(?:ed|ing)|disappoint(?:ed|ing)|unacceptable|unhappy|angry|annoyed|ridiculous)\b`,
			`\bnot\s+(?:happy|satisfied|acceptable)\b`,
			`\b(?:still\s+(?:waiting|no|not|haven'?t)|yet\s+again|once\s+again|third\s+time)\b`,
			`\b(?:delay(?:ed|s)?|blocked|issue|problem|sorry|apolog(?:y|ies|ise|ize))\b`,
		}},
		vi: patterns{match: []string{
			`xin\s+lỗi`,
			`không\s+hài\s+lòng`,
			`bực\s+(?:mình|bội)`,
			`thất\s+vọng`,
			`chậm\s+trễ`,
			`trục\s+trặc`,
			`vấn\s+đề`,
			`vẫn\s+chưa`,
		}},
	},
}

var threadStateTable = []outcome{
	{
		value: StateResolved,
		en: patterns{
			match: []string{
				`\b(?:resolved|fixed|done|completed|closed|settled|finali[sz]ed|signed)\b`,
				`\b(?:all\s+set|sorted\s+out|wrapped\s+up|no\s+further\s+action)\b`,
			},
			except: []string{
				`(?:\bnot|n't|\bnever)\s+(?:yet\s+|been\s+|quite\s+)?(?:resolved|fixed|done|completed|closed|settled|finali[sz]ed|signed|all\s+set)\b`,
				`\byet\s+to\s+be\s+\w+\b`,
			},
		},
		vi: patterns{
			match: []string{
				`\bxong\b`,
				`hoàn\s+tất`,
				`hoàn\s+thành`,
				`đã\s+xử\s+lý`,
				`đã\s+giải\s+quyết`,
				`đã\s+khắc\s+phục`,
			},
			except: []string{
				`chưa\s+(?:\S+\s+)?(?:xong|hoàn\s+tất|hoàn\s+thành|xử\s+lý|giải\s+quyết|khắc\s+phục)`,
			},
		},
	},
}
