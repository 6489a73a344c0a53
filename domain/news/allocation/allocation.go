// Package allocation computes how many articles to request per source
// and per topic given an overall budget. All functions are pure: given
// identical inputs they return identical output, with no randomness or
// time dependence.
package allocation

// SourceQuotas splits totalLimit across numSources as evenly as
// possible, in order. When totalLimit >= numSources the quotas sum to
// exactly totalLimit and every source receives at least one article;
// the first totalLimit%numSources sources receive one extra. When
// totalLimit < numSources only the first totalLimit sources receive a
// single article and the rest receive zero.
func SourceQuotas(totalLimit, numSources int) []int {
	if numSources <= 0 || totalLimit <= 0 {
		return nil
	}

	quotas := make([]int, numSources)

	if totalLimit < numSources {
		for i := 0; i < totalLimit; i++ {
			quotas[i] = 1
		}
		return quotas
	}

	base := totalLimit / numSources
	remainder := totalLimit % numSources
	for i := range quotas {
		quotas[i] = base
		if i < remainder {
			quotas[i]++
		}
	}
	return quotas
}

// TopicQuota assigns an article quota to one topic
type TopicQuota struct {
	Topic string
	Quota int
}

// TopicPlan is the result of distributing a budget across topics.
// Dropped lists the topics that could not be served at all, so callers
// never have to infer truncation from absence.
type TopicPlan struct {
	Served  []TopicQuota
	Dropped []string
}

// TotalQuota returns the sum of served quotas
func (p TopicPlan) TotalQuota() int {
	total := 0
	for _, tq := range p.Served {
		total += tq.Quota
	}
	return total
}

// PlanTopics distributes totalLimit across topics with the default
// floor of one and ceiling of two articles per topic.
func PlanTopics(topics []string, totalLimit int) TopicPlan {
	return PlanTopicsWithConfig(topics, totalLimit, 1, 2)
}

// PlanTopicsWithConfig distributes totalLimit across topics in input
// order. Three regimes apply:
//
//  1. Budget covers the ceiling for every topic: each gets maxPerTopic.
//  2. Budget covers the floor for every topic: each gets minPerTopic,
//     then the leftover is handed out one slot at a time in input order
//     until exhausted or every topic has reached maxPerTopic.
//  3. Budget cannot cover the floor: topics are served minPerTopic each
//     in input order until the budget runs out; the rest are dropped.
func PlanTopicsWithConfig(topics []string, totalLimit, minPerTopic, maxPerTopic int) TopicPlan {
	if len(topics) == 0 || totalLimit <= 0 || minPerTopic <= 0 || maxPerTopic < minPerTopic {
		return TopicPlan{Dropped: append([]string(nil), topics...)}
	}

	n := len(topics)

	if n*maxPerTopic <= totalLimit {
		served := make([]TopicQuota, n)
		for i, t := range topics {
			served[i] = TopicQuota{Topic: t, Quota: maxPerTopic}
		}
		return TopicPlan{Served: served}
	}

	if n*minPerTopic <= totalLimit {
		served := make([]TopicQuota, n)
		for i, t := range topics {
			served[i] = TopicQuota{Topic: t, Quota: minPerTopic}
		}
		extras := totalLimit - n*minPerTopic
		for i := 0; extras > 0; i = (i + 1) % n {
			if served[i].Quota < maxPerTopic {
				served[i].Quota++
				extras--
				continue
			}
			// All topics at ceiling, nothing left to give out
			if allAtCeiling(served, maxPerTopic) {
				break
			}
		}
		return TopicPlan{Served: served}
	}

	canServe := totalLimit / minPerTopic
	served := make([]TopicQuota, 0, canServe)
	dropped := make([]string, 0, n-canServe)
	for i, t := range topics {
		if i < canServe {
			served = append(served, TopicQuota{Topic: t, Quota: minPerTopic})
		} else {
			dropped = append(dropped, t)
		}
	}
	return TopicPlan{Served: served, Dropped: dropped}
}

func allAtCeiling(served []TopicQuota, maxPerTopic int) bool {
	for _, tq := range served {
		if tq.Quota < maxPerTopic {
			return false
		}
	}
	return true
}
